package event_bus

const (
	BudgetImportedEvent EventType = "budget.imported"
	BudgetSavedEvent    EventType = "budget.saved"
	BudgetRestoredEvent EventType = "budget.restored"
)

// BudgetImported is published after an import replaced the live collections.
type BudgetImported struct {
	Expenses int
	Incomes  int
}

// BudgetSaved is published after the live budget was stored in the registry.
type BudgetSaved struct {
	Id   string
	Name string
}

// BudgetRestored is published after a saved budget replaced the live state.
type BudgetRestored struct {
	Id string
}
