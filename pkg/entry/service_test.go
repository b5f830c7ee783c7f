package entry

import (
	"context"
	"testing"
	"time"

	"github.com/budgetboi/budgetboi/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*ServiceImpl, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewService(NewRepository(store)), store
}

func TestServiceAdd(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Add(ctx, KindExpense, Entry{
		Name:      "Rent",
		Amount:    1200,
		Recurring: RecurrenceMonthly,
		StartDate: date(2025, time.January, 1),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	entries, err := service.List(ctx, KindExpense)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].ID)

	// The income collection is untouched.
	incomes, err := service.List(ctx, KindIncome)
	require.NoError(t, err)
	assert.Empty(t, incomes)
}

func TestServiceUpdate(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Add(ctx, KindIncome, Entry{Name: "Side gig", Amount: 300, Recurring: RecurrenceNone, StartDate: date(2025, time.February, 1)})
	require.NoError(t, err)

	t.Run("existing entry is replaced", func(t *testing.T) {
		created.Amount = 350
		ok, err := service.Update(ctx, KindIncome, created)
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := service.GetByID(ctx, KindIncome, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 350.0, stored.Amount)
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		ok, err := service.Update(ctx, KindIncome, Entry{ID: "does-not-exist", Name: "Ghost"})
		require.NoError(t, err)
		assert.False(t, ok)

		entries, err := service.List(ctx, KindIncome)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestServiceDelete(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Add(ctx, KindExpense, Entry{Name: "Gym", Amount: 30, Recurring: RecurrenceWeekly, StartDate: date(2025, time.January, 1)})
	require.NoError(t, err)

	ok, err := service.Delete(ctx, KindExpense, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Delete(ctx, KindExpense, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServiceCountOnDate(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Add(ctx, KindExpense, Entry{Name: "Groceries", Amount: 50, Recurring: RecurrenceWeekly, StartDate: date(2025, time.January, 6)})
	require.NoError(t, err)
	_, err = service.Add(ctx, KindExpense, Entry{Name: "Haircut", Amount: 25, Recurring: RecurrenceNone, StartDate: date(2025, time.January, 6)})
	require.NoError(t, err)

	count, err := service.CountOnDate(ctx, KindExpense, date(2025, time.January, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = service.CountOnDate(ctx, KindExpense, date(2025, time.January, 7))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRepositoryCorruptCollectionIsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), storage.ExpensesKey, "{not json"))

	repo := NewRepository(store)
	entries, err := repo.GetAll(context.Background(), KindExpense)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryJSONRoundTrip(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	original := Entry{
		Name:      "Netflix",
		Amount:    15.49,
		Recurring: RecurrenceMonthly,
		StartDate: date(2025, time.March, 3),
		EndDate:   datePtr(2025, time.December, 3),
		Category:  "Subscriptions",
		Notes:     "shared plan",
	}
	created, err := service.Add(ctx, KindExpense, original)
	require.NoError(t, err)

	stored, err := service.GetByID(ctx, KindExpense, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, created, *stored)
}
