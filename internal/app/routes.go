package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Settings
	r.HandleFunc("/api/settings", deps.SettingsHandler.GetSettings).Methods("GET")
	r.HandleFunc("/api/settings", deps.SettingsHandler.SaveSettings).Methods("PUT")
	r.HandleFunc("/api/data", deps.SnapshotHandler.ClearAll).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense/instances", deps.ExpenseHandler.Instances).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Incomes
	r.HandleFunc("/api/income", deps.IncomeHandler.List).Methods("GET")
	r.HandleFunc("/api/income", deps.IncomeHandler.Create).Methods("POST")
	r.HandleFunc("/api/income/instances", deps.IncomeHandler.Instances).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Projections
	r.HandleFunc("/api/projection/balance", deps.ProjectionHandler.GetBalance).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/projection/month", deps.ProjectionHandler.GetMonthSummary).Queries("month", "{month}").Methods("GET")
	r.HandleFunc("/api/projection/series", deps.ProjectionHandler.GetSeries).Queries("month", "{month}").Methods("GET")
	r.HandleFunc("/api/projection/breakdown", deps.ProjectionHandler.GetBreakdown).Queries("month", "{month}").Methods("GET")

	// Export / import
	r.HandleFunc("/api/export/rows", deps.ProjectionHandler.GetExportRows).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/export/csv", deps.ProjectionHandler.GetExportCsv).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/export/budget", deps.SnapshotHandler.ExportBudget).Methods("GET")
	r.HandleFunc("/api/import/budget", deps.SnapshotHandler.ImportBudget).Methods("POST")

	// Saved budgets
	r.HandleFunc("/api/saved-budget", deps.SnapshotHandler.ListSaved).Methods("GET")
	r.HandleFunc("/api/saved-budget", deps.SnapshotHandler.SaveBudget).Methods("POST")
	r.HandleFunc("/api/saved-budget/{id}/load", deps.SnapshotHandler.LoadBudget).Methods("POST")
	r.HandleFunc("/api/saved-budget/{id}", deps.SnapshotHandler.UpdateBudget).Methods("PUT")
	r.HandleFunc("/api/saved-budget/{id}", deps.SnapshotHandler.DeleteBudget).Methods("DELETE")
}
