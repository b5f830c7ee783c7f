package entry

import (
	"encoding/json"
	"time"

	"github.com/budgetboi/budgetboi/internal/utils"
)

// Kind discriminates the two entry collections. The model, expansion
// algorithm, and persistence are identical for both; only the sign of the
// amount in balance projections differs, and that is the projector's concern.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Entry is a persisted expense or income rule. It is the sole source of
// truth; instances are derived from it on every query and never stored.
type Entry struct {
	ID        string
	Name      string
	Amount    float64
	Recurring Recurrence
	StartDate time.Time
	// EndDate is optional and only meaningful when Recurring != none.
	// Occurrences strictly after it are excluded.
	EndDate  *time.Time
	Category string
	Notes    string
}

// Instance is one concrete dated occurrence generated from an entry.
type Instance struct {
	Date    time.Time `json:"-"`
	Amount  float64   `json:"amount"`
	EntryID string    `json:"entryId"`
	Name    string    `json:"name"`
}

func (i Instance) MarshalJSON() ([]byte, error) {
	type alias Instance
	return json.Marshal(struct {
		Date string `json:"date"`
		alias
	}{
		Date:  utils.FormatDate(i.Date),
		alias: alias(i),
	})
}

type entryWire struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	Recurring Recurrence `json:"recurring"`
	StartDate string     `json:"startDate"`
	EndDate   *string    `json:"endDate,omitempty"`
	Category  string     `json:"category,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var endDate *string
	if e.EndDate != nil {
		formatted := utils.FormatDate(*e.EndDate)
		endDate = &formatted
	}
	return json.Marshal(entryWire{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		Recurring: e.Recurring,
		StartDate: utils.FormatDate(e.StartDate),
		EndDate:   endDate,
		Category:  e.Category,
		Notes:     e.Notes,
	})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var wire entryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	startDate, err := utils.ParseDate(wire.StartDate)
	if err != nil {
		return err
	}
	var endDate *time.Time
	if wire.EndDate != nil {
		parsed, err := utils.ParseDate(*wire.EndDate)
		if err != nil {
			return err
		}
		endDate = &parsed
	}
	*e = Entry{
		ID:        wire.ID,
		Name:      wire.Name,
		Amount:    wire.Amount,
		Recurring: wire.Recurring,
		StartDate: startDate,
		EndDate:   endDate,
		Category:  wire.Category,
		Notes:     wire.Notes,
	}
	return nil
}
