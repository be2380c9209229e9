package cmd

import (
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/ingest"
	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// loadTable reads one tabular file, honoring sheet selection for XLSX.
func loadTable(path, sheetName string, sheetIndex int) (*table.Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return ingest.ReadXLSX(path, sheetName, sheetIndex)
	}
	return ingest.ReadCSV(path)
}
