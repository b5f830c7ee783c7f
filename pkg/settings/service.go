package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetboi/budgetboi/internal/utils"
)

// defaultBudgetStart is used when settings exist but carry no parseable
// start date (legacy data).
var defaultBudgetStart = time.Date(2025, time.February, 16, 0, 0, 0, 0, time.UTC)

type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings Settings) error
	// BudgetStartDate is the earliest date the budget can be navigated or
	// projected to.
	BudgetStartDate(ctx context.Context) (time.Time, error)
	PayrollDatesInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
	IsPayrollDate(ctx context.Context, date time.Time) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

func (s *ServiceImpl) Save(ctx context.Context, settings Settings) error {
	settings.StartDate = utils.Day(settings.StartDate)
	settings.Payroll.FirstDate = utils.Day(settings.Payroll.FirstDate)
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *ServiceImpl) BudgetStartDate(ctx context.Context) (time.Time, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if stored == nil || stored.StartDate.IsZero() {
		return defaultBudgetStart, nil
	}
	return stored.StartDate, nil
}

func (s *ServiceImpl) PayrollDatesInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	return stored.Payroll.DatesInRange(from, to), nil
}

func (s *ServiceImpl) IsPayrollDate(ctx context.Context, date time.Time) (bool, error) {
	dates, err := s.PayrollDatesInRange(ctx, date, date)
	if err != nil {
		return false, err
	}
	for _, d := range dates {
		if utils.SameDay(d, date) {
			return true, nil
		}
	}
	return false, nil
}
