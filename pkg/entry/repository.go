package entry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/budgetboi/budgetboi/internal/storage"
	log "github.com/sirupsen/logrus"
)

func storeKey(kind Kind) string {
	if kind == KindIncome {
		return storage.IncomesKey
	}
	return storage.ExpensesKey
}

type Repository interface {
	// GetAll returns every entry of the given kind. A corrupt collection is
	// treated as empty rather than failing the caller.
	GetAll(ctx context.Context, kind Kind) ([]Entry, error)
	// SaveAll replaces the whole collection for the given kind.
	SaveAll(ctx context.Context, kind Kind, entries []Entry) error
	Clear(ctx context.Context, kind Kind) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetAll(ctx context.Context, kind Kind) ([]Entry, error) {
	raw, ok, err := r.store.Get(ctx, storeKey(kind))
	if err != nil {
		return nil, fmt.Errorf("could not read %s entries: %w", kind, err)
	}
	if !ok {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warnf("stored %s entries are corrupt, treating as empty: %v", kind, err)
		return []Entry{}, nil
	}
	return entries, nil
}

func (r *RepositoryImpl) SaveAll(ctx context.Context, kind Kind, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("could not serialize %s entries: %w", kind, err)
	}
	if err := r.store.Set(ctx, storeKey(kind), string(data)); err != nil {
		return fmt.Errorf("could not store %s entries: %w", kind, err)
	}
	return nil
}

func (r *RepositoryImpl) Clear(ctx context.Context, kind Kind) error {
	return r.store.Remove(ctx, storeKey(kind))
}
