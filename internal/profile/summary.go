package profile

import (
	"encoding/json"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// TableSummary aggregates per-column profiles for one table. Profiles keeps
// the table's column order.
type TableSummary struct {
	Source      string
	RowCount    int
	ColumnCount int
	Profiles    []ColumnProfile
}

// Summarize profiles every column of the table, in column order. A table with
// zero columns cannot be summarized; a zero-row table with defined columns is
// valid and yields all-zero profiles.
func Summarize(t *table.Table) (*TableSummary, error) {
	if len(t.Columns) == 0 {
		return nil, &EmptyTableError{Source: t.Source}
	}
	s := &TableSummary{
		Source:      t.Source,
		RowCount:    t.RowCount(),
		ColumnCount: len(t.Columns),
		Profiles:    make([]ColumnProfile, 0, len(t.Columns)),
	}
	for _, col := range t.Columns {
		s.Profiles = append(s.Profiles, ProfileColumn(col.Name, col.Cells))
	}
	return s, nil
}

// Profile looks a column profile up by name.
func (s *TableSummary) Profile(name string) (ColumnProfile, bool) {
	for _, p := range s.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return ColumnProfile{}, false
}

// ColumnNames returns profiled column names in table order.
func (s *TableSummary) ColumnNames() []string {
	names := make([]string, len(s.Profiles))
	for i, p := range s.Profiles {
		names[i] = p.Name
	}
	return names
}

// summaryWire pins the JSON contract consumed by dashboard rendering.
// Downstream keys off these field names literally.
type summaryWire struct {
	SourceName     string                   `json:"source_name"`
	RowCount       int                      `json:"row_count"`
	ColumnCount    int                      `json:"column_count"`
	Columns        []string                 `json:"columns"`
	ColumnProfiles map[string]ColumnProfile `json:"column_profiles"`
}

// MarshalJSON serializes the summary with column_profiles keyed by column
// name. The columns field preserves table order.
func (s *TableSummary) MarshalJSON() ([]byte, error) {
	w := summaryWire{
		SourceName:     s.Source,
		RowCount:       s.RowCount,
		ColumnCount:    s.ColumnCount,
		Columns:        s.ColumnNames(),
		ColumnProfiles: make(map[string]ColumnProfile, len(s.Profiles)),
	}
	for _, p := range s.Profiles {
		w.ColumnProfiles[p.Name] = p
	}
	return json.Marshal(w)
}

// UnmarshalJSON restores a summary from its wire form, recovering column
// order from the columns field.
func (s *TableSummary) UnmarshalJSON(data []byte) error {
	var w summaryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Source = w.SourceName
	s.RowCount = w.RowCount
	s.ColumnCount = w.ColumnCount
	s.Profiles = make([]ColumnProfile, 0, len(w.Columns))
	for _, name := range w.Columns {
		if p, ok := w.ColumnProfiles[name]; ok {
			s.Profiles = append(s.Profiles, p)
		}
	}
	return nil
}
