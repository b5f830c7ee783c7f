package projection

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/budgetboi/budgetboi/internal/utils"
	log "github.com/sirupsen/logrus"
)

type CsvExportRenderer struct {
}

func NewCsvExportRenderer() *CsvExportRenderer {
	return &CsvExportRenderer{}
}

// Render produces the CSV document for a range export: a Date,Name,Type,
// Amount header and one line per row. Quoting of commas, quotes, and
// newlines follows RFC 4180 via the csv writer.
func (t *CsvExportRenderer) Render(rows []ExportRow) (string, error) {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, []string{"Date", "Name", "Type", "Amount"})
	for _, row := range rows {
		data = append(data, []string{
			utils.FormatDate(row.Date),
			row.Name,
			string(row.Type),
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, record := range data {
		if err := writer.Write(record); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
