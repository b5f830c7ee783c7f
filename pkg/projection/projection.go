package projection

import "time"

// biweeklyToMonthly annualizes an every-2-weeks paycheck into a monthly
// planning figure: 26 paychecks per year over 12 months.
const biweeklyToMonthly = 26.0 / 12.0

// BalancePoint is one day of the balance time series backing a line chart.
type BalancePoint struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// NamedAmount is a pie-chart bucket: spending summed under one label.
type NamedAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CategoryAmount is spending summed under one category.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type RowType string

const (
	RowExpense RowType = "Expense"
	RowIncome  RowType = "Income"
	RowPayroll RowType = "Payroll"
)

// ExportRow is one transaction in the range export feed.
type ExportRow struct {
	Date   time.Time
	Name   string
	Type   RowType
	Amount float64
}
