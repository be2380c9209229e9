package prompt

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/profile"
)

// Render produces the analysis prompt for a table summary and a free-text
// question. Pure function: identical inputs yield byte-identical output,
// which upstream prompt caching depends on.
func Render(s *profile.TableSummary, question string) string {
	var b strings.Builder
	b.WriteString("You are a data analysis assistant.\n")
	b.WriteString("Answer using only the dataset summary below.\n")
	b.WriteString("Structure the answer as: key findings / evidence / limitations / next steps.\n\n")

	b.WriteString("[DATASET SUMMARY]\n")
	if s.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", s.Source))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.RowCount))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", s.ColumnCount))

	b.WriteString("[SCHEMA]\n")
	for _, p := range s.Profiles {
		b.WriteString(fmt.Sprintf("- %s: %s (missing %.1f%%, unique %d)", safeName(p.Name), p.Dtype, p.MissingRatio*100, p.UniqueCount))
		if p.Numeric != nil {
			d := p.Numeric
			b.WriteString(fmt.Sprintf("; min %.6g, max %.6g, mean %.6g, median %.6g, std %.6g, outlier ratio %.4f",
				d.Min, d.Max, d.Mean, d.Median, d.Std, d.OutlierRatio))
		}
		if len(p.TopValues) > 0 {
			b.WriteString("; top: ")
			for i, tv := range p.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(tv.Value), tv.Count))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[QUESTION]\n")
	b.WriteString(question)
	b.WriteString("\n\n[INSTRUCTIONS]\n")
	b.WriteString("Call out notable insights, likely outlier candidates, and what follow-up data would sharpen the analysis.\n")
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
