package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// Read loads a tabular file into a Table, dispatching on extension.
// .csv and .tsv go through the CSV reader; .xlsx goes through the
// spreadsheet reader.
func Read(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, "", 0)
	default:
		return ReadCSV(path)
	}
}

// ReadCSV loads a delimited text file. The first record is the header;
// every later record becomes one row, padded with missing cells when
// short.
func ReadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(path)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table.New(filepath.Base(path), nil)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		cp := make([]string, len(rec))
		copy(cp, rec)
		records = append(records, cp)
	}
	return table.FromRecords(filepath.Base(path), header, records)
}

// sniffDelimiter picks the field separator from the filename. Tab for
// .tsv, comma otherwise.
func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
