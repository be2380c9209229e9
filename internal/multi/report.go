package multi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSON serializes the report with the fixed wire field set.
func (r *Report) JSON() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(b), nil
}

// Markdown renders a compact dashboard-style report.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[MULTI-DATASET REPORT]\n")
	b.WriteString(fmt.Sprintf("Files: %d\n", r.FileCount))
	b.WriteString(fmt.Sprintf("Total rows: %d\n", r.TotalRowCount))
	if len(r.SharedColumns) > 0 {
		b.WriteString(fmt.Sprintf("Shared columns: %s\n", strings.Join(r.SharedColumns, ", ")))
	} else {
		b.WriteString("Shared columns: (none)\n")
	}

	if len(r.SharedColumns) > 0 {
		b.WriteString("\n[SCHEMA DRIFT]\n")
		b.WriteString("| column | dtype changed | missing ratio range | dominant ratio range | mean range |\n")
		b.WriteString("|---|---|---:|---:|---:|\n")
		for _, col := range r.SharedColumns {
			d := r.SchemaDrift[col]
			b.WriteString(fmt.Sprintf("| %s | %t | %.4f | %.4f | %.4f |\n",
				col, d.DtypeChanged, d.MissingRatioRange, d.DominantValueRatioRange, d.MeanRange))
		}
	}

	if len(r.Insights) > 0 {
		b.WriteString("\n[INSIGHTS]\n")
		for _, in := range r.Insights {
			b.WriteString("- ")
			b.WriteString(in)
			b.WriteString("\n")
		}
	}

	for _, f := range r.Files {
		b.WriteString(fmt.Sprintf("\n[FILE] %s\n", f.Source))
		b.WriteString(fmt.Sprintf("Rows: %d, Columns: %d\n", f.RowCount, f.ColumnCount))
		b.WriteString("| column | dtype | missing | unique | outlier ratio |\n")
		b.WriteString("|---|---|---:|---:|---:|\n")
		for _, p := range f.Profiles {
			outlier := "-"
			if p.Numeric != nil {
				outlier = fmt.Sprintf("%.4f", p.Numeric.OutlierRatio)
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %.4f | %d | %s |\n", p.Name, p.Dtype, p.MissingRatio, p.UniqueCount, outlier))
		}
	}

	if r.Breakdown != nil {
		b.WriteString(fmt.Sprintf("\n[GROUPS] %s x %s\n", r.Breakdown.GroupColumn, r.Breakdown.TargetColumn))
		for _, g := range r.Breakdown.Groups {
			if g.TargetCount > 0 {
				b.WriteString(fmt.Sprintf("- %s: n=%d, mean=%.6g\n", g.Key, g.Count, g.TargetMean))
			} else {
				b.WriteString(fmt.Sprintf("- %s: n=%d\n", g.Key, g.Count))
			}
		}
	}
	return b.String()
}
