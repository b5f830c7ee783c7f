package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/budgetboi/budgetboi/internal/storage"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Get returns the stored settings, or nil when none exist. A corrupt
	// record is treated as absent rather than failing the caller.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings Settings) error
	Clear(ctx context.Context) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) Get(ctx context.Context) (*Settings, error) {
	raw, ok, err := r.store.Get(ctx, storage.SettingsKey)
	if err != nil {
		return nil, fmt.Errorf("could not read settings: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var settings Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		log.Warnf("stored settings are corrupt, treating as absent: %v", err)
		return nil, nil
	}
	return &settings, nil
}

func (r *RepositoryImpl) Save(ctx context.Context, settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("could not serialize settings: %w", err)
	}
	if err := r.store.Set(ctx, storage.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("could not store settings: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, storage.SettingsKey)
}
