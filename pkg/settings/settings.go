package settings

import (
	"encoding/json"
	"time"

	"github.com/budgetboi/budgetboi/internal/utils"
)

type PayrollFrequency string

const (
	FrequencyMonthly     PayrollFrequency = "monthly"
	FrequencyEvery2Weeks PayrollFrequency = "every2weeks"
)

// Payroll describes the recurring paycheck rule. A zero FirstDate means
// payroll has not been configured.
type Payroll struct {
	FirstDate         time.Time
	Frequency         PayrollFrequency
	AmountPerPaycheck float64
}

// Settings holds the per-budget configuration. StartDate is the inclusive
// lower bound for every projection and navigation query.
type Settings struct {
	InitialBalance float64
	StartDate      time.Time
	Payroll        Payroll
}

// DatesInRange returns every payday in [from, to], both inclusive, walking
// forward from FirstDate by the configured frequency. There is no end date;
// the walk stops once the cursor passes to.
func (p Payroll) DatesInRange(from, to time.Time) []time.Time {
	if p.FirstDate.IsZero() {
		return nil
	}
	from, to = utils.Day(from), utils.Day(to)
	start := utils.Day(p.FirstDate)
	if start.After(to) {
		return nil
	}
	var dates []time.Time
	cursor := start
	for !cursor.After(to) {
		if !cursor.Before(from) {
			dates = append(dates, cursor)
		}
		if p.Frequency == FrequencyMonthly {
			cursor = utils.AddMonths(cursor, 1)
		} else {
			cursor = cursor.AddDate(0, 0, 14)
		}
	}
	return dates
}

type payrollWire struct {
	FirstDate         string           `json:"firstDate"`
	Frequency         PayrollFrequency `json:"frequency"`
	AmountPerPaycheck float64          `json:"amountPerPaycheck"`
}

type settingsWire struct {
	InitialBalance float64     `json:"initialBalance"`
	StartDate      string      `json:"startDate"`
	Payroll        payrollWire `json:"payroll"`
}

func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(settingsWire{
		InitialBalance: s.InitialBalance,
		StartDate:      utils.FormatDate(s.StartDate),
		Payroll: payrollWire{
			FirstDate:         utils.FormatDate(s.Payroll.FirstDate),
			Frequency:         s.Payroll.Frequency,
			AmountPerPaycheck: s.Payroll.AmountPerPaycheck,
		},
	})
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var wire settingsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	startDate, err := utils.ParseDate(wire.StartDate)
	if err != nil {
		// Legacy records may carry an unparseable start date; keep it zero
		// and let BudgetStartDate fall back to the default.
		startDate = time.Time{}
	}
	firstDate, err := utils.ParseDate(wire.Payroll.FirstDate)
	if err != nil {
		firstDate = time.Time{}
	}
	*s = Settings{
		InitialBalance: wire.InitialBalance,
		StartDate:      startDate,
		Payroll: Payroll{
			FirstDate:         firstDate,
			Frequency:         wire.Payroll.Frequency,
			AmountPerPaycheck: wire.Payroll.AmountPerPaycheck,
		},
	}
	return nil
}
