package projection

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/budgetboi/budgetboi/internal/utils"
	"github.com/budgetboi/budgetboi/pkg/entry"
	"github.com/budgetboi/budgetboi/pkg/settings"
)

// Service answers every balance and aggregate question the presentation
// layer asks. Everything is a pure, synchronous computation over the
// currently persisted settings and entries; nothing is cached or
// materialized between calls.
type Service interface {
	BalanceOnDate(ctx context.Context, date time.Time) (float64, error)
	MonthlyIncomeBudgeted(ctx context.Context) (float64, error)
	AmountSpentInMonth(ctx context.Context, month time.Time) (float64, error)
	IncomeInMonth(ctx context.Context, month time.Time) (float64, error)
	LowestBalanceInMonth(ctx context.Context, month time.Time) (float64, error)
	BalanceSeriesForMonth(ctx context.Context, month time.Time) ([]BalancePoint, error)
	TotalSpentFromStart(ctx context.Context, throughMonth time.Time) (float64, error)
	TotalIncomeFromStart(ctx context.Context, throughMonth time.Time) (float64, error)
	MonthsTrackedCount(ctx context.Context, throughMonth time.Time) (int, error)
	AverageSpentPerMonth(ctx context.Context, throughMonth time.Time) (float64, error)
	AverageNetPerMonth(ctx context.Context, throughMonth time.Time) (float64, error)
	// SavingsRateForMonth returns nil when the month has no income; callers
	// must render a placeholder, not a number.
	SavingsRateForMonth(ctx context.Context, month time.Time) (*float64, error)
	SpendingByNameForMonth(ctx context.Context, month time.Time) ([]NamedAmount, error)
	SpendingByCategoryForMonth(ctx context.Context, month time.Time) ([]CategoryAmount, error)
	ExportRowsForRange(ctx context.Context, from, to time.Time) ([]ExportRow, error)
}

type ServiceImpl struct {
	settingsService settings.Service
	entryService    entry.Service
}

func NewService(settingsService settings.Service, entryService entry.Service) *ServiceImpl {
	return &ServiceImpl{
		settingsService: settingsService,
		entryService:    entryService,
	}
}

func (s *ServiceImpl) BalanceOnDate(ctx context.Context, date time.Time) (float64, error) {
	stored, err := s.settingsService.Get(ctx)
	if err != nil {
		return 0, err
	}
	if stored == nil {
		return 0, nil
	}
	date = utils.Day(date)
	start := utils.Day(stored.StartDate)
	if date.Before(start) {
		return 0, nil
	}

	balance := stored.InitialBalance
	payrollDates := stored.Payroll.DatesInRange(start, date)
	balance += float64(len(payrollDates)) * stored.Payroll.AmountPerPaycheck

	expenses, err := s.entryService.InstancesInRange(ctx, entry.KindExpense, start, date)
	if err != nil {
		return 0, err
	}
	for _, inst := range expenses {
		balance -= inst.Amount
	}

	incomes, err := s.entryService.InstancesInRange(ctx, entry.KindIncome, start, date)
	if err != nil {
		return 0, err
	}
	for _, inst := range incomes {
		balance += inst.Amount
	}
	return balance, nil
}

func (s *ServiceImpl) MonthlyIncomeBudgeted(ctx context.Context) (float64, error) {
	stored, err := s.settingsService.Get(ctx)
	if err != nil {
		return 0, err
	}
	if stored == nil || stored.Payroll.FirstDate.IsZero() {
		return 0, nil
	}
	if stored.Payroll.Frequency == settings.FrequencyMonthly {
		return stored.Payroll.AmountPerPaycheck, nil
	}
	return stored.Payroll.AmountPerPaycheck * biweeklyToMonthly, nil
}

func (s *ServiceImpl) AmountSpentInMonth(ctx context.Context, month time.Time) (float64, error) {
	instances, err := s.entryService.InstancesInRange(ctx, entry.KindExpense, utils.MonthStart(month), utils.MonthEnd(month))
	if err != nil {
		return 0, err
	}
	var total float64
	for _, inst := range instances {
		total += inst.Amount
	}
	return total, nil
}

func (s *ServiceImpl) IncomeInMonth(ctx context.Context, month time.Time) (float64, error) {
	start, end := utils.MonthStart(month), utils.MonthEnd(month)

	var total float64
	stored, err := s.settingsService.Get(ctx)
	if err != nil {
		return 0, err
	}
	if stored != nil {
		payrollDates := stored.Payroll.DatesInRange(start, end)
		total += float64(len(payrollDates)) * stored.Payroll.AmountPerPaycheck
	}

	instances, err := s.entryService.InstancesInRange(ctx, entry.KindIncome, start, end)
	if err != nil {
		return 0, err
	}
	for _, inst := range instances {
		total += inst.Amount
	}
	return total, nil
}

// monthWalkStart resolves the per-day walk range for a month: the later of
// the month start and the budget start. The bool reports whether the range
// is non-empty.
func (s *ServiceImpl) monthWalkStart(ctx context.Context, month time.Time) (time.Time, time.Time, bool, error) {
	stored, err := s.settingsService.Get(ctx)
	if err != nil || stored == nil {
		return time.Time{}, time.Time{}, false, err
	}
	start := utils.Day(stored.StartDate)
	monthStart, monthEnd := utils.MonthStart(month), utils.MonthEnd(month)
	rangeStart := monthStart
	if rangeStart.Before(start) {
		rangeStart = start
	}
	if rangeStart.After(monthEnd) {
		return time.Time{}, time.Time{}, false, nil
	}
	return rangeStart, monthEnd, true, nil
}

func (s *ServiceImpl) LowestBalanceInMonth(ctx context.Context, month time.Time) (float64, error) {
	rangeStart, monthEnd, ok, err := s.monthWalkStart(ctx, month)
	if err != nil || !ok {
		return 0, err
	}
	min, err := s.BalanceOnDate(ctx, rangeStart)
	if err != nil {
		return 0, err
	}
	for cursor := rangeStart; !cursor.After(monthEnd); cursor = cursor.AddDate(0, 0, 1) {
		balance, err := s.BalanceOnDate(ctx, cursor)
		if err != nil {
			return 0, err
		}
		if balance < min {
			min = balance
		}
	}
	return min, nil
}

func (s *ServiceImpl) BalanceSeriesForMonth(ctx context.Context, month time.Time) ([]BalancePoint, error) {
	rangeStart, monthEnd, ok, err := s.monthWalkStart(ctx, month)
	if err != nil || !ok {
		return []BalancePoint{}, err
	}
	var points []BalancePoint
	for cursor := rangeStart; !cursor.After(monthEnd); cursor = cursor.AddDate(0, 0, 1) {
		balance, err := s.BalanceOnDate(ctx, cursor)
		if err != nil {
			return nil, err
		}
		points = append(points, BalancePoint{
			Date:    cursor.Format("Jan 2"),
			Balance: balance,
		})
	}
	return points, nil
}

// monthsFromStart walks calendar months from the budget-start month through
// the end of throughMonth, calling visit once per month. It is a no-op when
// settings are missing or throughMonth precedes the budget-start month.
func (s *ServiceImpl) monthsFromStart(ctx context.Context, throughMonth time.Time, visit func(month time.Time) error) error {
	stored, err := s.settingsService.Get(ctx)
	if err != nil || stored == nil {
		return err
	}
	startMonth := utils.MonthStart(stored.StartDate)
	endMonth := utils.MonthEnd(throughMonth)
	if endMonth.Before(startMonth) {
		return nil
	}
	for cursor := startMonth; !cursor.After(endMonth); cursor = utils.AddMonths(cursor, 1) {
		if err := visit(cursor); err != nil {
			return err
		}
	}
	return nil
}

func (s *ServiceImpl) TotalSpentFromStart(ctx context.Context, throughMonth time.Time) (float64, error) {
	var total float64
	err := s.monthsFromStart(ctx, throughMonth, func(month time.Time) error {
		spent, err := s.AmountSpentInMonth(ctx, month)
		total += spent
		return err
	})
	return total, err
}

func (s *ServiceImpl) TotalIncomeFromStart(ctx context.Context, throughMonth time.Time) (float64, error) {
	var total float64
	err := s.monthsFromStart(ctx, throughMonth, func(month time.Time) error {
		income, err := s.IncomeInMonth(ctx, month)
		total += income
		return err
	})
	return total, err
}

func (s *ServiceImpl) MonthsTrackedCount(ctx context.Context, throughMonth time.Time) (int, error) {
	months := 0
	err := s.monthsFromStart(ctx, throughMonth, func(time.Time) error {
		months++
		return nil
	})
	return months, err
}

func (s *ServiceImpl) AverageSpentPerMonth(ctx context.Context, throughMonth time.Time) (float64, error) {
	total, err := s.TotalSpentFromStart(ctx, throughMonth)
	if err != nil {
		return 0, err
	}
	months, err := s.MonthsTrackedCount(ctx, throughMonth)
	if err != nil || months == 0 {
		return 0, err
	}
	return total / float64(months), nil
}

func (s *ServiceImpl) AverageNetPerMonth(ctx context.Context, throughMonth time.Time) (float64, error) {
	income, err := s.TotalIncomeFromStart(ctx, throughMonth)
	if err != nil {
		return 0, err
	}
	spent, err := s.TotalSpentFromStart(ctx, throughMonth)
	if err != nil {
		return 0, err
	}
	months, err := s.MonthsTrackedCount(ctx, throughMonth)
	if err != nil || months == 0 {
		return 0, err
	}
	return (income - spent) / float64(months), nil
}

func (s *ServiceImpl) SavingsRateForMonth(ctx context.Context, month time.Time) (*float64, error) {
	income, err := s.IncomeInMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if income <= 0 {
		return nil, nil
	}
	spent, err := s.AmountSpentInMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	rate := (income - spent) / income * 100
	return &rate, nil
}

// expenseLabels resolves each expense instance in the month to a label via
// the owning entry's *current* state, sums per label, and sorts descending.
func (s *ServiceImpl) expenseLabels(ctx context.Context, month time.Time, label func(e *entry.Entry) string) ([]NamedAmount, error) {
	instances, err := s.entryService.InstancesInRange(ctx, entry.KindExpense, utils.MonthStart(month), utils.MonthEnd(month))
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	buckets := make([]NamedAmount, 0)
	for _, inst := range instances {
		owner, err := s.entryService.GetByID(ctx, entry.KindExpense, inst.EntryID)
		if err != nil {
			return nil, err
		}
		name := label(owner)
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, NamedAmount{Name: name})
		}
		buckets[i].Amount += inst.Amount
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Amount > buckets[j].Amount
	})
	return buckets, nil
}

func (s *ServiceImpl) SpendingByNameForMonth(ctx context.Context, month time.Time) ([]NamedAmount, error) {
	return s.expenseLabels(ctx, month, func(e *entry.Entry) string {
		if e == nil || strings.TrimSpace(e.Name) == "" {
			return "Unnamed"
		}
		return strings.TrimSpace(e.Name)
	})
}

func (s *ServiceImpl) SpendingByCategoryForMonth(ctx context.Context, month time.Time) ([]CategoryAmount, error) {
	buckets, err := s.expenseLabels(ctx, month, func(e *entry.Entry) string {
		if e == nil || strings.TrimSpace(e.Category) == "" {
			return "Uncategorized"
		}
		return strings.TrimSpace(e.Category)
	})
	if err != nil {
		return nil, err
	}
	categories := make([]CategoryAmount, 0, len(buckets))
	for _, b := range buckets {
		categories = append(categories, CategoryAmount{Category: b.Name, Amount: b.Amount})
	}
	return categories, nil
}

func (s *ServiceImpl) ExportRowsForRange(ctx context.Context, from, to time.Time) ([]ExportRow, error) {
	var rows []ExportRow

	expenses, err := s.entryService.InstancesInRange(ctx, entry.KindExpense, from, to)
	if err != nil {
		return nil, err
	}
	for _, inst := range expenses {
		rows = append(rows, ExportRow{Date: inst.Date, Name: inst.Name, Type: RowExpense, Amount: inst.Amount})
	}

	incomes, err := s.entryService.InstancesInRange(ctx, entry.KindIncome, from, to)
	if err != nil {
		return nil, err
	}
	for _, inst := range incomes {
		rows = append(rows, ExportRow{Date: inst.Date, Name: inst.Name, Type: RowIncome, Amount: inst.Amount})
	}

	stored, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		for _, d := range stored.Payroll.DatesInRange(from, to) {
			rows = append(rows, ExportRow{Date: d, Name: "Payroll", Type: RowPayroll, Amount: stored.Payroll.AmountPerPaycheck})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows, nil
}
