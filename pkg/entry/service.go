package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetboi/budgetboi/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context, kind Kind) ([]Entry, error)
	GetByID(ctx context.Context, kind Kind, id string) (*Entry, error)
	Add(ctx context.Context, kind Kind, e Entry) (Entry, error)
	// Update replaces the entry with a matching id. A missing id is a
	// silent no-op reported through the bool, not an error.
	Update(ctx context.Context, kind Kind, e Entry) (bool, error)
	// Delete reports whether an entry was actually removed.
	Delete(ctx context.Context, kind Kind, id string) (bool, error)
	InstancesInRange(ctx context.Context, kind Kind, from, to time.Time) ([]Instance, error)
	CountOnDate(ctx context.Context, kind Kind, date time.Time) (int, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, kind Kind) ([]Entry, error) {
	return s.repo.GetAll(ctx, kind)
}

func (s *ServiceImpl) GetByID(ctx context.Context, kind Kind, id string) (*Entry, error) {
	entries, err := s.repo.GetAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (s *ServiceImpl) Add(ctx context.Context, kind Kind, e Entry) (Entry, error) {
	entries, err := s.repo.GetAll(ctx, kind)
	if err != nil {
		return Entry{}, err
	}
	e.ID = uuid.NewString()
	e.StartDate = utils.Day(e.StartDate)
	if e.EndDate != nil {
		d := utils.Day(*e.EndDate)
		e.EndDate = &d
	}
	if err := s.repo.SaveAll(ctx, kind, append(entries, e)); err != nil {
		return Entry{}, fmt.Errorf("failed to add %s entry: %w", kind, err)
	}
	return e, nil
}

func (s *ServiceImpl) Update(ctx context.Context, kind Kind, e Entry) (bool, error) {
	entries, err := s.repo.GetAll(ctx, kind)
	if err != nil {
		return false, err
	}
	for i := range entries {
		if entries[i].ID == e.ID {
			e.StartDate = utils.Day(e.StartDate)
			if e.EndDate != nil {
				d := utils.Day(*e.EndDate)
				e.EndDate = &d
			}
			entries[i] = e
			if err := s.repo.SaveAll(ctx, kind, entries); err != nil {
				return false, fmt.Errorf("failed to update %s entry: %w", kind, err)
			}
			return true, nil
		}
	}
	log.Debugf("%s entry %s not updated because it does not exist", kind, e.ID)
	return false, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, kind Kind, id string) (bool, error) {
	entries, err := s.repo.GetAll(ctx, kind)
	if err != nil {
		return false, err
	}
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(entries) {
		return false, nil
	}
	if err := s.repo.SaveAll(ctx, kind, filtered); err != nil {
		return false, fmt.Errorf("failed to delete %s entry: %w", kind, err)
	}
	return true, nil
}

func (s *ServiceImpl) InstancesInRange(ctx context.Context, kind Kind, from, to time.Time) ([]Instance, error) {
	entries, err := s.repo.GetAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	return ExpandAll(entries, from, to), nil
}

func (s *ServiceImpl) CountOnDate(ctx context.Context, kind Kind, date time.Time) (int, error) {
	instances, err := s.InstancesInRange(ctx, kind, date, date)
	if err != nil {
		return 0, err
	}
	return len(instances), nil
}
