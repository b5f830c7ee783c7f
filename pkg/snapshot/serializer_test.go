package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/budgetboi/budgetboi/internal/event_bus"
	"github.com/budgetboi/budgetboi/internal/storage"
	"github.com/budgetboi/budgetboi/pkg/entry"
	"github.com/budgetboi/budgetboi/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store        *storage.MemoryStore
	settingsRepo settings.Repository
	entryRepo    entry.Repository
	serializer   *SerializerImpl
}

func newFixture() fixture {
	store := storage.NewMemoryStore()
	settingsRepo := settings.NewRepository(store)
	entryRepo := entry.NewRepository(store)
	return fixture{
		store:        store,
		settingsRepo: settingsRepo,
		entryRepo:    entryRepo,
		serializer:   NewSerializer(settingsRepo, entryRepo, event_bus.NewEventBus()),
	}
}

func (f fixture) seed(t *testing.T, ctx context.Context) {
	t.Helper()
	require.NoError(t, f.settingsRepo.Save(ctx, settings.Settings{
		InitialBalance: 1000,
		StartDate:      date(2025, time.January, 1),
		Payroll: settings.Payroll{
			FirstDate:         date(2025, time.January, 3),
			Frequency:         settings.FrequencyEvery2Weeks,
			AmountPerPaycheck: 500,
		},
	}))
	require.NoError(t, f.entryRepo.SaveAll(ctx, entry.KindExpense, []entry.Entry{
		{ID: "e1", Name: "Rent", Amount: 1200, Recurring: entry.RecurrenceMonthly, StartDate: date(2025, time.January, 5), Category: "Housing"},
	}))
	require.NoError(t, f.entryRepo.SaveAll(ctx, entry.KindIncome, []entry.Entry{
		{ID: "i1", Name: "Side gig", Amount: 300, Recurring: entry.RecurrenceNone, StartDate: date(2025, time.February, 1)},
	}))
}

func TestExportImportRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seed(t, ctx)

	settingsBefore, err := f.settingsRepo.Get(ctx)
	require.NoError(t, err)
	expensesBefore, err := f.entryRepo.GetAll(ctx, entry.KindExpense)
	require.NoError(t, err)
	incomesBefore, err := f.entryRepo.GetAll(ctx, entry.KindIncome)
	require.NoError(t, err)

	doc, err := f.serializer.Export(ctx)
	require.NoError(t, err)

	require.NoError(t, f.serializer.ClearAll(ctx))
	require.NoError(t, f.serializer.Import(ctx, doc))

	settingsAfter, err := f.settingsRepo.Get(ctx)
	require.NoError(t, err)
	expensesAfter, err := f.entryRepo.GetAll(ctx, entry.KindExpense)
	require.NoError(t, err)
	incomesAfter, err := f.entryRepo.GetAll(ctx, entry.KindIncome)
	require.NoError(t, err)

	assert.Equal(t, settingsBefore, settingsAfter)
	assert.Equal(t, expensesBefore, expensesAfter)
	assert.Equal(t, incomesBefore, incomesAfter)
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unparseable json", "{not json"},
		{"unsupported version", `{"version":2,"settings":{"initialBalance":1,"startDate":"2025-01-01","payroll":{"firstDate":"2025-01-03","frequency":"monthly","amountPerPaycheck":100}}}`},
		{"missing version", `{"settings":{"initialBalance":1,"startDate":"2025-01-01","payroll":{"firstDate":"2025-01-03","frequency":"monthly","amountPerPaycheck":100}}}`},
		{"missing settings", `{"version":1,"expenses":[],"incomes":[]}`},
		{"null settings", `{"version":1,"settings":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			f.seed(t, ctx)

			settingsBefore, err := f.settingsRepo.Get(ctx)
			require.NoError(t, err)
			expensesBefore, err := f.entryRepo.GetAll(ctx, entry.KindExpense)
			require.NoError(t, err)

			err = f.serializer.Import(ctx, tt.doc)
			assert.ErrorIs(t, err, ErrInvalidBudgetFile)

			// A failed import leaves the live state untouched.
			settingsAfter, err := f.settingsRepo.Get(ctx)
			require.NoError(t, err)
			expensesAfter, err := f.entryRepo.GetAll(ctx, entry.KindExpense)
			require.NoError(t, err)
			assert.Equal(t, settingsBefore, settingsAfter)
			assert.Equal(t, expensesBefore, expensesAfter)
		})
	}
}

func TestImportDefaultsMissingCollections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seed(t, ctx)

	doc := `{"version":1,"settings":{"initialBalance":50,"startDate":"2025-03-01","payroll":{"firstDate":"2025-03-07","frequency":"monthly","amountPerPaycheck":2000}}}`
	require.NoError(t, f.serializer.Import(ctx, doc))

	expenses, err := f.entryRepo.GetAll(ctx, entry.KindExpense)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	incomes, err := f.entryRepo.GetAll(ctx, entry.KindIncome)
	require.NoError(t, err)
	assert.Empty(t, incomes)

	stored, err := f.settingsRepo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 50.0, stored.InitialBalance)
}

func TestExportWithoutSettings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc, err := f.serializer.Export(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"settings":null,"expenses":[],"incomes":[]}`, doc)

	// An empty export is not importable: settings are required.
	assert.ErrorIs(t, f.serializer.Import(ctx, doc), ErrInvalidBudgetFile)
}
