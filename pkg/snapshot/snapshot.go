package snapshot

import (
	"errors"
	"time"

	"github.com/budgetboi/budgetboi/pkg/entry"
	"github.com/budgetboi/budgetboi/pkg/settings"
)

// Version is the only snapshot document version this build accepts.
const Version = 1

var (
	ErrInvalidBudgetFile   = errors.New("invalid budget file")
	ErrSavedBudgetNotFound = errors.New("saved budget not found")
)

// Snapshot is the full exportable state of one budget as a single versioned
// document. It is both the on-disk import/export file format and the payload
// embedded in saved-budget registry entries.
type Snapshot struct {
	Version  int                `json:"version"`
	Settings *settings.Settings `json:"settings"`
	Expenses []entry.Entry      `json:"expenses"`
	Incomes  []entry.Entry      `json:"incomes"`
}

// SavedBudgetMeta identifies one saved budget in the registry.
type SavedBudgetMeta struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"savedAt"`
}

// SavedBudgetEntry is the persisted registry record: metadata plus the
// serialized snapshot document.
type SavedBudgetEntry struct {
	SavedBudgetMeta
	Data string `json:"data"`
}
