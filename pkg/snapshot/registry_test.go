package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/budgetboi/budgetboi/internal/event_bus"
	"github.com/budgetboi/budgetboi/internal/storage"
	"github.com/budgetboi/budgetboi/internal/utils"
	"github.com/budgetboi/budgetboi/pkg/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registryFixture struct {
	fixture
	clock    *utils.MockClock
	registry *RegistryImpl
}

func newRegistryFixture() registryFixture {
	f := newFixture()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewRegistryRepo(f.store)
	return registryFixture{
		fixture:  f,
		clock:    clock,
		registry: NewRegistry(repo, f.serializer, clock, event_bus.NewEventBus()),
	}
}

func TestRegistrySaveMintsSequentialIds(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	f.seed(t, ctx)

	first, err := f.registry.Save(ctx, "January plan")
	require.NoError(t, err)
	assert.Equal(t, "1", first)

	second, err := f.registry.Save(ctx, "February plan")
	require.NoError(t, err)
	assert.Equal(t, "2", second)

	metas, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "January plan", metas[0].Name)
	assert.Equal(t, f.clock.FixedNow, metas[0].SavedAt)
}

func TestRegistrySaveDefaultsBlankName(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	f.seed(t, ctx)

	_, err := f.registry.Save(ctx, "   ")
	require.NoError(t, err)

	metas, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "Budget 2025-06-01", metas[0].Name)
}

func TestRegistryLoad(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	f.seed(t, ctx)

	id, err := f.registry.Save(ctx, "Before changes")
	require.NoError(t, err)

	// Mutate the live budget, then restore the saved copy.
	require.NoError(t, f.entryRepo.SaveAll(ctx, entry.KindExpense, []entry.Entry{}))
	require.NoError(t, f.registry.Load(ctx, id))

	expenses, err := f.entryRepo.GetAll(ctx, entry.KindExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Rent", expenses[0].Name)

	t.Run("unknown id fails with not found", func(t *testing.T) {
		assert.ErrorIs(t, f.registry.Load(ctx, "999"), ErrSavedBudgetNotFound)
	})
}

func TestRegistryDeleteUnknownIdIsNoOp(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	f.seed(t, ctx)

	_, err := f.registry.Save(ctx, "one")
	require.NoError(t, err)
	_, err = f.registry.Save(ctx, "two")
	require.NoError(t, err)

	require.NoError(t, f.registry.Delete(ctx, "does-not-exist"))

	metas, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "1", metas[0].ID)
	assert.Equal(t, "2", metas[1].ID)
}

func TestRegistryUpdate(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	f.seed(t, ctx)

	id, err := f.registry.Save(ctx, "original")
	require.NoError(t, err)

	t.Run("renames and refreshes savedAt", func(t *testing.T) {
		f.clock.SetNow(f.clock.FixedNow.Add(24 * time.Hour))
		newName := "renamed"
		require.NoError(t, f.registry.Update(ctx, id, RegistryUpdate{Name: &newName}))

		metas, err := f.registry.List(ctx)
		require.NoError(t, err)
		require.Len(t, metas, 1)
		assert.Equal(t, "renamed", metas[0].Name)
		assert.Equal(t, f.clock.FixedNow, metas[0].SavedAt)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		other := "ghost"
		require.NoError(t, f.registry.Update(ctx, "999", RegistryUpdate{Name: &other}))

		metas, err := f.registry.List(ctx)
		require.NoError(t, err)
		require.Len(t, metas, 1)
		assert.Equal(t, "renamed", metas[0].Name)
	})
}

func TestRegistryLegacyIdMigration(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()

	// Two legacy uuid-style entries, stored newest first.
	legacy := `[
		{"id":"9b2f4c6e-1d3a-4f5b-8c7d-0a1b2c3d4e5f","name":"newer","savedAt":"2024-05-01T10:00:00Z","data":"{}"},
		{"id":"0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0","name":"older","savedAt":"2024-01-01T10:00:00Z","data":"{}"}
	]`
	require.NoError(t, f.store.Set(ctx, storage.SavedBudgetsKey, legacy))

	repo := NewRegistryRepo(f.store)
	entries, err := repo.GetAll(ctx)
	require.NoError(t, err)

	// Renumbered by savedAt ascending, starting at "1".
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "older", entries[0].Name)
	assert.Equal(t, "2", entries[1].ID)
	assert.Equal(t, "newer", entries[1].Name)

	// The migration persisted before returning and is idempotent.
	again, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, again)

	raw, ok, err := f.store.Get(ctx, storage.SavedBudgetsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, legacy, raw)
	assert.Contains(t, raw, `"id":"1"`)
}

func TestRegistryCorruptCollectionIsEmpty(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, storage.SavedBudgetsKey, "not json"))

	metas, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, metas)
}
