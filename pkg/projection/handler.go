package projection

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/budgetboi/budgetboi/internal/utils"
	log "github.com/sirupsen/logrus"
)

type MonthSummaryDTO struct {
	Month                 string           `json:"month"`
	Spent                 float64          `json:"spent"`
	Income                float64          `json:"income"`
	LowestBalance         float64          `json:"lowestBalance"`
	SavingsRate           *float64         `json:"savingsRate"`
	MonthlyIncomeBudgeted float64          `json:"monthlyIncomeBudgeted"`
	TotalSpentFromStart   float64          `json:"totalSpentFromStart"`
	TotalIncomeFromStart  float64          `json:"totalIncomeFromStart"`
	MonthsTracked         int              `json:"monthsTracked"`
	AverageSpentPerMonth  float64          `json:"averageSpentPerMonth"`
	AverageNetPerMonth    float64          `json:"averageNetPerMonth"`
	ByCategory            []CategoryAmount `json:"byCategory"`
}

type ExportRowDTO struct {
	Date   string  `json:"date"`
	Name   string  `json:"name"`
	Type   RowType `json:"type"`
	Amount float64 `json:"amount"`
}

type Handler struct {
	service  Service
	renderer *CsvExportRenderer
}

func NewHandler(service Service, renderer *CsvExportRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

func parseMonth(raw string) (time.Time, error) {
	return time.Parse("2006-01", raw)
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid 'date'", http.StatusBadRequest)
		return
	}
	balance, err := h.service.BalanceOnDate(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	response := struct {
		Date    string  `json:"date"`
		Balance float64 `json:"balance"`
	}{utils.FormatDate(date), balance}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing month summary")
	w.Header().Set("Content-Type", "application/json")

	month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "Invalid 'month'", http.StatusBadRequest)
		return
	}

	summary := MonthSummaryDTO{Month: month.Format("2006-01")}
	if summary.Spent, err = h.service.AmountSpentInMonth(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.Income, err = h.service.IncomeInMonth(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.LowestBalance, err = h.service.LowestBalanceInMonth(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.SavingsRate, err = h.service.SavingsRateForMonth(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.MonthlyIncomeBudgeted, err = h.service.MonthlyIncomeBudgeted(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.TotalSpentFromStart, err = h.service.TotalSpentFromStart(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.TotalIncomeFromStart, err = h.service.TotalIncomeFromStart(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.MonthsTracked, err = h.service.MonthsTrackedCount(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.AverageSpentPerMonth, err = h.service.AverageSpentPerMonth(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.AverageNetPerMonth, err = h.service.AverageNetPerMonth(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.ByCategory, err = h.service.SpendingByCategoryForMonth(r.Context(), month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "Invalid 'month'", http.StatusBadRequest)
		return
	}
	points, err := h.service.BalanceSeriesForMonth(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []BalancePoint{}
	}
	if err := json.NewEncoder(w).Encode(points); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "Invalid 'month'", http.StatusBadRequest)
		return
	}
	var payload any
	switch r.URL.Query().Get("by") {
	case "category":
		payload, err = h.service.SpendingByCategoryForMonth(r.Context(), month)
	case "name", "":
		payload, err = h.service.SpendingByNameForMonth(r.Context(), month)
	default:
		http.Error(w, "Invalid 'by' parameter", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) exportRows(w http.ResponseWriter, r *http.Request) ([]ExportRow, bool) {
	from, err := utils.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "Invalid 'from' date", http.StatusBadRequest)
		return nil, false
	}
	to, err := utils.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "Invalid 'to' date", http.StatusBadRequest)
		return nil, false
	}
	rows, err := h.service.ExportRowsForRange(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return rows, true
}

func (h *Handler) GetExportRows(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.exportRows(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	dtos := make([]ExportRowDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ExportRowDTO{
			Date:   utils.FormatDate(row.Date),
			Name:   row.Name,
			Type:   row.Type,
			Amount: row.Amount,
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetExportCsv(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.exportRows(w, r)
	if !ok {
		return
	}
	document, err := h.renderer.Render(rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.csv")
	if _, err := w.Write([]byte(document)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}
