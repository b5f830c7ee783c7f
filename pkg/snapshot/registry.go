package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/budgetboi/budgetboi/internal/event_bus"
	"github.com/budgetboi/budgetboi/internal/utils"
	log "github.com/sirupsen/logrus"
)

// RegistryUpdate is a partial update of a saved budget. Nil fields are left
// unchanged.
type RegistryUpdate struct {
	Name *string
	Data *string
}

// Registry is the catalog of named snapshots.
type Registry interface {
	List(ctx context.Context) ([]SavedBudgetMeta, error)
	// Save stores the current live budget under name and returns the newly
	// minted sequential id.
	Save(ctx context.Context, name string) (string, error)
	// Load replaces the live budget with the saved one. Returns
	// ErrSavedBudgetNotFound when id does not exist.
	Load(ctx context.Context, id string) error
	// Delete removes the entry; deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
	// Update applies a partial update and refreshes savedAt; updating an
	// unknown id is a no-op.
	Update(ctx context.Context, id string, update RegistryUpdate) error
}

type RegistryImpl struct {
	repo       RegistryRepo
	serializer Serializer
	clock      utils.Clock
	bus        *event_bus.EventBus
}

func NewRegistry(repo RegistryRepo, serializer Serializer, clock utils.Clock, bus *event_bus.EventBus) *RegistryImpl {
	return &RegistryImpl{
		repo:       repo,
		serializer: serializer,
		clock:      clock,
		bus:        bus,
	}
}

func (r *RegistryImpl) List(ctx context.Context) ([]SavedBudgetMeta, error) {
	entries, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	metas := make([]SavedBudgetMeta, 0, len(entries))
	for _, e := range entries {
		metas = append(metas, e.SavedBudgetMeta)
	}
	return metas, nil
}

func (r *RegistryImpl) Save(ctx context.Context, name string) (string, error) {
	data, err := r.serializer.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to serialize current budget: %w", err)
	}
	entries, err := r.repo.GetAll(ctx)
	if err != nil {
		return "", err
	}

	nextNum := 1
	for _, e := range entries {
		if n, err := strconv.Atoi(e.ID); err == nil && n >= nextNum {
			nextNum = n + 1
		}
	}
	id := strconv.Itoa(nextNum)

	savedAt := r.clock.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Budget " + utils.FormatDate(savedAt)
	}
	entries = append(entries, SavedBudgetEntry{
		SavedBudgetMeta: SavedBudgetMeta{ID: id, Name: name, SavedAt: savedAt},
		Data:            data,
	})
	if err := r.repo.SaveAll(ctx, entries); err != nil {
		return "", err
	}

	if r.bus != nil {
		_ = r.bus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetSavedEvent, event_bus.BudgetSaved{Id: id, Name: name}))
	}
	return id, nil
}

func (r *RegistryImpl) Load(ctx context.Context, id string) error {
	entries, err := r.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.ID == id {
			if err := r.serializer.Import(ctx, e.Data); err != nil {
				return fmt.Errorf("failed to restore saved budget %s: %w", id, err)
			}
			if r.bus != nil {
				_ = r.bus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetRestoredEvent, event_bus.BudgetRestored{Id: id}))
			}
			return nil
		}
	}
	return ErrSavedBudgetNotFound
}

func (r *RegistryImpl) Delete(ctx context.Context, id string) error {
	entries, err := r.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	filtered := make([]SavedBudgetEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	return r.repo.SaveAll(ctx, filtered)
}

func (r *RegistryImpl) Update(ctx context.Context, id string, update RegistryUpdate) error {
	entries, err := r.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if update.Name != nil {
			entries[i].Name = *update.Name
		}
		if update.Data != nil {
			entries[i].Data = *update.Data
		}
		entries[i].SavedAt = r.clock.Now()
		return r.repo.SaveAll(ctx, entries)
	}
	log.Debugf("saved budget %s not updated because it does not exist", id)
	return nil
}
