package storage

import "context"

// Store is the single I/O boundary of the application: a local key-value
// store holding JSON-serialized collections under well-known string keys.
// Every mutation is a whole-value read-modify-write; there is no field-level
// update and no cross-process consistency guarantee (last set wins).
type Store interface {
	// Get returns the raw value for key. The second return value reports
	// whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// Well-known collection keys.
const (
	SettingsKey     = "settings"
	ExpensesKey     = "expenses"
	IncomesKey      = "incomes"
	SavedBudgetsKey = "saved-budgets"
)
