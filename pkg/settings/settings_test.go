package settings

import (
	"context"
	"testing"
	"time"

	"github.com/budgetboi/budgetboi/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPayrollDatesInRange_Every2Weeks(t *testing.T) {
	payroll := Payroll{
		FirstDate:         date(2025, time.January, 3),
		Frequency:         FrequencyEvery2Weeks,
		AmountPerPaycheck: 500,
	}

	dates := payroll.DatesInRange(date(2025, time.January, 1), date(2025, time.February, 28))

	assert.Equal(t, []time.Time{
		date(2025, time.January, 3),
		date(2025, time.January, 17),
		date(2025, time.January, 31),
		date(2025, time.February, 14),
		date(2025, time.February, 28),
	}, dates)
}

func TestPayrollDatesInRange_Monthly(t *testing.T) {
	payroll := Payroll{
		FirstDate:         date(2025, time.January, 31),
		Frequency:         FrequencyMonthly,
		AmountPerPaycheck: 3000,
	}

	dates := payroll.DatesInRange(date(2025, time.January, 1), date(2025, time.March, 31))

	// Paydays clamp to the last day of short months.
	assert.Equal(t, []time.Time{
		date(2025, time.January, 31),
		date(2025, time.February, 28),
		date(2025, time.March, 28),
	}, dates)
}

func TestPayrollDatesInRange_Edges(t *testing.T) {
	payroll := Payroll{FirstDate: date(2025, time.June, 1), Frequency: FrequencyMonthly}

	t.Run("first date after range", func(t *testing.T) {
		assert.Empty(t, payroll.DatesInRange(date(2025, time.January, 1), date(2025, time.May, 31)))
	})

	t.Run("unconfigured payroll", func(t *testing.T) {
		assert.Empty(t, Payroll{}.DatesInRange(date(2025, time.January, 1), date(2025, time.December, 31)))
	})
}

func TestServiceSaveAndGet(t *testing.T) {
	store := storage.NewMemoryStore()
	service := NewService(NewRepository(store))
	ctx := context.Background()

	stored, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	err = service.Save(ctx, Settings{
		InitialBalance: 1000,
		StartDate:      date(2025, time.January, 1),
		Payroll: Payroll{
			FirstDate:         date(2025, time.January, 3),
			Frequency:         FrequencyEvery2Weeks,
			AmountPerPaycheck: 500,
		},
	})
	require.NoError(t, err)

	stored, err = service.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1000.0, stored.InitialBalance)
	assert.Equal(t, date(2025, time.January, 1), stored.StartDate)
	assert.Equal(t, FrequencyEvery2Weeks, stored.Payroll.Frequency)
}

func TestServiceBudgetStartDate(t *testing.T) {
	store := storage.NewMemoryStore()
	service := NewService(NewRepository(store))
	ctx := context.Background()

	t.Run("defaults when no settings exist", func(t *testing.T) {
		start, err := service.BudgetStartDate(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaultBudgetStart, start)
	})

	t.Run("uses the configured start date", func(t *testing.T) {
		require.NoError(t, service.Save(ctx, Settings{StartDate: date(2025, time.March, 1)}))
		start, err := service.BudgetStartDate(ctx)
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.March, 1), start)
	})
}

func TestServiceIsPayrollDate(t *testing.T) {
	store := storage.NewMemoryStore()
	service := NewService(NewRepository(store))
	ctx := context.Background()

	require.NoError(t, service.Save(ctx, Settings{
		StartDate: date(2025, time.January, 1),
		Payroll: Payroll{
			FirstDate:         date(2025, time.January, 3),
			Frequency:         FrequencyEvery2Weeks,
			AmountPerPaycheck: 500,
		},
	}))

	payday, err := service.IsPayrollDate(ctx, date(2025, time.January, 17))
	require.NoError(t, err)
	assert.True(t, payday)

	notPayday, err := service.IsPayrollDate(ctx, date(2025, time.January, 18))
	require.NoError(t, err)
	assert.False(t, notPayday)
}

func TestRepositoryCorruptSettingsAreAbsent(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), storage.SettingsKey, "]["))

	repo := NewRepository(store)
	stored, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stored)
}
