package multi

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/tabloom-cli/internal/profile"
)

const (
	// MissingHotspotThreshold flags columns whose missing ratio reaches it.
	MissingHotspotThreshold = 0.2
	// OutlierHotspotThreshold flags numeric columns whose outlier ratio reaches it.
	OutlierHotspotThreshold = 0.1
	// DriftThreshold is the relative mean difference beyond which two files
	// are reported as drifting on a shared numeric column.
	DriftThreshold = 0.2
)

// synthesize derives insight statements from the per-file summaries. Rules
// are independent; output is concatenated in rule order, then by file order
// within a rule.
func synthesize(rep *Report) []string {
	insights := []string{}
	insights = append(insights, missingHotspots(rep.Files)...)
	insights = append(insights, outlierHotspots(rep.Files)...)
	insights = append(insights, driftInsights(rep.Files)...)
	insights = append(insights, dtypeDriftInsights(rep.SharedColumns, rep.SchemaDrift)...)
	insights = append(insights, reasonInsights(rep.ReasonCandidates)...)
	if len(rep.SharedColumns) == 0 && rep.FileCount > 1 {
		insights = append(insights, fmt.Sprintf("no shared columns across %d files; datasets have no common schema", rep.FileCount))
	}
	if rep.Breakdown != nil {
		insights = append(insights, breakdownInsights(rep.Breakdown)...)
	}
	return insights
}

func missingHotspots(files []*profile.TableSummary) []string {
	var out []string
	for _, f := range files {
		for _, p := range f.Profiles {
			if p.MissingRatio >= MissingHotspotThreshold {
				out = append(out, fmt.Sprintf("%s / %s: missing ratio %.1f%%", f.Source, p.Name, p.MissingRatio*100))
			}
		}
	}
	return out
}

func outlierHotspots(files []*profile.TableSummary) []string {
	var out []string
	for _, f := range files {
		for _, p := range f.Profiles {
			if p.Numeric != nil && p.Numeric.OutlierRatio >= OutlierHotspotThreshold {
				out = append(out, fmt.Sprintf("%s / %s: outlier ratio %.1f%%", f.Source, p.Name, p.Numeric.OutlierRatio*100))
			}
		}
	}
	return out
}

// driftInsights compares the mean of every column that is numeric in at least
// two files, pairwise in file order. Columns are visited in order of first
// appearance across the files.
func driftInsights(files []*profile.TableSummary) []string {
	type numCol struct {
		file string
		mean float64
	}
	byColumn := map[string][]numCol{}
	var order []string
	for _, f := range files {
		for _, p := range f.Profiles {
			if p.Dtype != profile.DtypeNumeric || p.Numeric == nil {
				continue
			}
			if _, seen := byColumn[p.Name]; !seen {
				order = append(order, p.Name)
			}
			byColumn[p.Name] = append(byColumn[p.Name], numCol{file: f.Source, mean: p.Numeric.Mean})
		}
	}

	var out []string
	for _, name := range order {
		cols := byColumn[name]
		for i := 0; i < len(cols); i++ {
			for j := i + 1; j < len(cols); j++ {
				delta := relativeDiff(cols[i].mean, cols[j].mean)
				if delta > DriftThreshold {
					out = append(out, fmt.Sprintf("column %s: mean drift between %s (%.6g) and %s (%.6g), delta %.1f%%",
						name, cols[i].file, cols[i].mean, cols[j].file, cols[j].mean, delta*100))
				}
			}
		}
	}
	return out
}

// relativeDiff is |a-b| scaled by the larger magnitude; 0 when both are 0.
func relativeDiff(a, b float64) float64 {
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return 0
	}
	return math.Abs(a-b) / denom
}

// dtypeDriftInsights reports shared columns whose inferred dtype differs
// between files, in shared-column order.
func dtypeDriftInsights(shared []string, drift map[string]ColumnDrift) []string {
	var out []string
	for _, col := range shared {
		if d, ok := drift[col]; ok && d.DtypeChanged {
			out = append(out, fmt.Sprintf("shared column %s has a different inferred dtype across files", col))
		}
	}
	return out
}

func reasonInsights(cands []ReasonCandidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, fmt.Sprintf("%s: likely cause [%s] %s", c.File, c.Rule, c.Reason))
	}
	return out
}

func breakdownInsights(bd *GroupBreakdown) []string {
	var out []string
	for _, g := range bd.Groups {
		if g.TargetCount > 0 {
			out = append(out, fmt.Sprintf("group %s=%s: %d rows, mean %s %.6g", bd.GroupColumn, g.Key, g.Count, bd.TargetColumn, g.TargetMean))
		} else {
			out = append(out, fmt.Sprintf("group %s=%s: %d rows, no numeric %s values", bd.GroupColumn, g.Key, g.Count, bd.TargetColumn))
		}
	}
	return out
}
