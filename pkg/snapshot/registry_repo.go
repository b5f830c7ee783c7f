package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/budgetboi/budgetboi/internal/storage"
	log "github.com/sirupsen/logrus"
)

type RegistryRepo interface {
	// GetAll returns every saved-budget entry, migrating legacy ids first
	// when needed. A corrupt collection is treated as empty.
	GetAll(ctx context.Context) ([]SavedBudgetEntry, error)
	SaveAll(ctx context.Context, entries []SavedBudgetEntry) error
}

type RegistryRepoImpl struct {
	store storage.Store
}

func NewRegistryRepo(store storage.Store) *RegistryRepoImpl {
	return &RegistryRepoImpl{store: store}
}

// isLegacyID detects ids from the old globally-unique scheme (long,
// hyphenated uuids) as opposed to the small sequential integers in use now.
func isLegacyID(id string) bool {
	return len(id) > 20 && strings.Contains(id, "-")
}

func (r *RegistryRepoImpl) GetAll(ctx context.Context) ([]SavedBudgetEntry, error) {
	raw, ok, err := r.store.Get(ctx, storage.SavedBudgetsKey)
	if err != nil {
		return nil, fmt.Errorf("could not read saved budgets: %w", err)
	}
	if !ok {
		return []SavedBudgetEntry{}, nil
	}
	var entries []SavedBudgetEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warnf("stored saved budgets are corrupt, treating as empty: %v", err)
		return []SavedBudgetEntry{}, nil
	}

	// One-time renumbering from the legacy uuid scheme: sort by savedAt
	// ascending, assign dense sequential ids starting at "1", and persist
	// before returning. Running this twice is safe because new-style ids
	// never look like legacy ones.
	hasLegacy := false
	for _, e := range entries {
		if isLegacyID(e.ID) {
			hasLegacy = true
			break
		}
	}
	if hasLegacy && len(entries) > 0 {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].SavedAt.Before(entries[j].SavedAt)
		})
		for i := range entries {
			entries[i].ID = strconv.Itoa(i + 1)
		}
		if err := r.SaveAll(ctx, entries); err != nil {
			return nil, fmt.Errorf("failed to persist saved-budget id migration: %w", err)
		}
		log.Infof("migrated %d saved budgets to sequential ids", len(entries))
	}

	return entries, nil
}

func (r *RegistryRepoImpl) SaveAll(ctx context.Context, entries []SavedBudgetEntry) error {
	if entries == nil {
		entries = []SavedBudgetEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("could not serialize saved budgets: %w", err)
	}
	if err := r.store.Set(ctx, storage.SavedBudgetsKey, string(data)); err != nil {
		return fmt.Errorf("could not store saved budgets: %w", err)
	}
	return nil
}
