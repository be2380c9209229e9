package compare

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// eps floors probabilities so divergence terms never divide by zero.
const eps = 1e-9

const numBins = 10

// ColumnMetric holds the distribution comparison for one common column.
type ColumnMetric struct {
	Type         string   `json:"type"` // numeric | categorical
	Buckets      []string `json:"buckets"`
	BeforeCounts []int    `json:"before_counts"`
	AfterCounts  []int    `json:"after_counts"`
	PSI          float64  `json:"psi"`
	JSDivergence float64  `json:"js_divergence"`
	ChiSquare    float64  `json:"chi_square"`
}

// SideInfo identifies one side of the comparison.
type SideInfo struct {
	SourceName  string `json:"source_name"`
	Fingerprint string `json:"fingerprint"`
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
}

// Result is the before/after comparison over the columns both tables share.
type Result struct {
	Before        SideInfo                `json:"before"`
	After         SideInfo                `json:"after"`
	CommonColumns []string                `json:"common_columns"`
	ColumnMetrics map[string]ColumnMetric `json:"column_metrics"`
}

// Tables compares the value distributions of two tables column by column.
// Numeric columns are binned into equal-width buckets over the combined
// range; other columns are compared per category.
func Tables(before, after *table.Table) *Result {
	res := &Result{
		Before:        sideInfo(before),
		After:         sideInfo(after),
		ColumnMetrics: map[string]ColumnMetric{},
	}

	afterNames := map[string]struct{}{}
	for _, n := range after.ColumnNames() {
		afterNames[n] = struct{}{}
	}
	for _, n := range before.ColumnNames() {
		if _, ok := afterNames[n]; ok {
			res.CommonColumns = append(res.CommonColumns, n)
		}
	}
	sort.Strings(res.CommonColumns)

	for _, name := range res.CommonColumns {
		bc, _ := before.Column(name)
		ac, _ := after.Column(name)

		var m ColumnMetric
		if isNumericColumn(bc, ac) {
			vals := numericValues(bc)
			vals = append(vals, numericValues(ac)...)
			if len(vals) == 0 {
				continue
			}
			bins := makeBins(vals)
			m = ColumnMetric{
				Type:         "numeric",
				Buckets:      bucketLabels(bins),
				BeforeCounts: numericCounts(bc, bins),
				AfterCounts:  numericCounts(ac, bins),
			}
		} else {
			categories := categorySet(bc, ac)
			if len(categories) == 0 {
				continue
			}
			m = ColumnMetric{
				Type:         "categorical",
				Buckets:      categories,
				BeforeCounts: categoryCounts(bc, categories),
				AfterCounts:  categoryCounts(ac, categories),
			}
		}

		bp := normalizeProbs(m.BeforeCounts)
		ap := normalizeProbs(m.AfterCounts)
		m.PSI = psi(bp, ap)
		m.JSDivergence = jsDivergence(bp, ap)
		m.ChiSquare = chiSquare(m.BeforeCounts, m.AfterCounts)
		res.ColumnMetrics[name] = m
	}
	return res
}

// isNumericColumn reports whether every non-missing value on both sides
// parses as a finite number and at least one value was seen.
func isNumericColumn(cols ...*table.Column) bool {
	seen := false
	for _, col := range cols {
		for _, c := range col.Cells {
			if c.IsMissing() {
				continue
			}
			seen = true
			if v, ok := c.Float(); !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return seen
}

func numericValues(col *table.Column) []float64 {
	var out []float64
	for _, c := range col.Cells {
		if v, ok := c.Float(); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func makeBins(values []float64) []float64 {
	vMin, vMax := values[0], values[0]
	for _, v := range values[1:] {
		if v < vMin {
			vMin = v
		}
		if v > vMax {
			vMax = v
		}
	}
	if math.Abs(vMax-vMin) < 1e-12 {
		return []float64{vMin - 0.5, vMax + 0.5}
	}
	step := (vMax - vMin) / numBins
	bins := make([]float64, 0, numBins+1)
	for i := 0; i < numBins; i++ {
		bins = append(bins, vMin+step*float64(i))
	}
	return append(bins, vMax)
}

func bucketLabels(bins []float64) []string {
	labels := make([]string, len(bins)-1)
	for i := range labels {
		labels[i] = fmt.Sprintf("[%.4g, %.4g)", bins[i], bins[i+1])
	}
	last := len(labels) - 1
	labels[last] = strings.Replace(labels[last], ")", "]", 1)
	return labels
}

func numericCounts(col *table.Column, bins []float64) []int {
	counts := make([]int, len(bins)-1)
	for _, v := range numericValues(col) {
		for i := 0; i < len(bins)-1; i++ {
			lower, upper := bins[i], bins[i+1]
			last := i == len(bins)-2
			if (lower <= v && v < upper) || (last && lower <= v && v <= upper) {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// categorySet collects the distinct raw values on both sides, with the empty
// string standing in for missing cells.
func categorySet(cols ...*table.Column) []string {
	set := map[string]struct{}{}
	for _, col := range cols {
		for _, c := range col.Cells {
			set[strings.TrimSpace(c.Raw)] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func categoryCounts(col *table.Column, categories []string) []int {
	tally := map[string]int{}
	for _, c := range col.Cells {
		tally[strings.TrimSpace(c.Raw)]++
	}
	counts := make([]int, len(categories))
	for i, cat := range categories {
		counts[i] = tally[cat]
	}
	return counts
}

func normalizeProbs(counts []int) []float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make([]float64, len(counts))
	if total <= 0 {
		for i := range out {
			out[i] = 1.0 / float64(len(counts))
		}
		return out
	}
	for i, c := range counts {
		out[i] = math.Max(float64(c)/float64(total), eps)
	}
	return out
}

func psi(before, after []float64) float64 {
	var sum float64
	for i := range before {
		sum += (after[i] - before[i]) * math.Log(after[i]/before[i])
	}
	return sum
}

func jsDivergence(before, after []float64) float64 {
	m := make([]float64, len(before))
	for i := range before {
		m[i] = (before[i] + after[i]) / 2
	}
	return 0.5*klDivergence(before, m) + 0.5*klDivergence(after, m)
}

func klDivergence(p, q []float64) float64 {
	var sum float64
	for i := range p {
		sum += p[i] * math.Log(p[i]/q[i])
	}
	return sum
}

func chiSquare(before, after []int) float64 {
	var beforeTotal, afterTotal int
	for _, c := range before {
		beforeTotal += c
	}
	for _, c := range after {
		afterTotal += c
	}
	if beforeTotal == 0 || afterTotal == 0 {
		return 0
	}
	var score float64
	for i := range before {
		expected := math.Max(float64(before[i])/float64(beforeTotal)*float64(afterTotal), eps)
		diff := float64(after[i]) - expected
		score += diff * diff / expected
	}
	return score
}
