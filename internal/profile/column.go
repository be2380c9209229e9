package profile

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// Dtype is the inferred column type.
type Dtype string

const (
	DtypeNumeric  Dtype = "numeric"
	DtypeText     Dtype = "text"
	DtypeBoolean  Dtype = "boolean"
	DtypeDatetime Dtype = "datetime-like"
	DtypeMixed    Dtype = "mixed"
)

const (
	// parseRateThreshold is the share of non-missing values that must parse
	// as a candidate type before the column is classified as that type.
	parseRateThreshold = 0.95
	// mixedShareThreshold: when numeric-like and non-numeric-like values each
	// exceed this share, the column is mixed rather than text.
	mixedShareThreshold = 0.05
	// topValueLimit caps the most-frequent-values list per column.
	topValueLimit = 5
	// madMultiplier scales the median absolute deviation for outlier checks.
	madMultiplier = 3.0
)

// ValueCount is one entry of a column's most frequent values.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// NumericDistribution summarizes parsed numeric values of a numeric column.
type NumericDistribution struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Std          float64 `json:"standard_deviation"`
	OutlierRatio float64 `json:"outlier_ratio"`
}

// ColumnProfile is the derived, read-only summary of one column.
type ColumnProfile struct {
	Name         string               `json:"name"`
	Dtype        Dtype                `json:"inferred_dtype"`
	MissingCount int                  `json:"missing_count"`
	MissingRatio float64              `json:"missing_ratio"`
	UniqueCount  int                  `json:"unique_count"`
	TopValues    []ValueCount         `json:"top_values"`
	Numeric      *NumericDistribution `json:"numeric_distribution,omitempty"`
}

var booleanLiterals = map[string]struct{}{
	"true": {}, "false": {}, "yes": {}, "no": {}, "0": {}, "1": {},
}

var datetimeLayouts = []string{
	"2006-01-02", "2006/01/02", "2006.01.02", "2006-01-02 15:04:05",
}

func looksBoolean(c table.Cell) bool {
	if c.Kind == table.KindBool {
		return true
	}
	_, ok := booleanLiterals[strings.ToLower(strings.TrimSpace(c.Raw))]
	return ok
}

// ParseDatetime parses a raw value against the recognized datetime layouts.
func ParseDatetime(raw string) (time.Time, bool) {
	v := strings.TrimSpace(raw)
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func looksDatetime(raw string) bool {
	_, ok := ParseDatetime(raw)
	return ok
}

// ProfileColumn computes the statistical profile of one column. Missing means
// the designated sentinel only; the numeral zero and the literal "0" are
// ordinary values.
func ProfileColumn(name string, cells []table.Cell) ColumnProfile {
	p := ColumnProfile{Name: name, Dtype: DtypeText, TopValues: []ValueCount{}}
	rowCount := len(cells)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var numericVals []float64
	nonMissing := 0
	boolCount := 0
	datetimeCount := 0

	for _, c := range cells {
		if c.IsMissing() {
			p.MissingCount++
			continue
		}
		nonMissing++
		if _, seen := counts[c.Raw]; !seen {
			firstSeen[c.Raw] = nonMissing
		}
		counts[c.Raw]++
		if v, ok := c.Float(); ok {
			numericVals = append(numericVals, v)
		}
		if looksBoolean(c) {
			boolCount++
		}
		if looksDatetime(c.Raw) {
			datetimeCount++
		}
	}

	if rowCount > 0 {
		p.MissingRatio = float64(p.MissingCount) / float64(rowCount)
	}
	p.UniqueCount = len(counts)
	p.TopValues = topValues(counts, firstSeen, topValueLimit)
	p.Dtype = inferDtype(nonMissing, len(numericVals), boolCount, datetimeCount)
	if p.Dtype == DtypeNumeric {
		p.Numeric = describeNumeric(numericVals)
	}
	return p
}

func inferDtype(nonMissing, numericCount, boolCount, datetimeCount int) Dtype {
	if nonMissing == 0 {
		return DtypeText
	}
	nn := float64(nonMissing)
	if float64(numericCount)/nn >= parseRateThreshold {
		return DtypeNumeric
	}
	if float64(boolCount)/nn >= parseRateThreshold {
		return DtypeBoolean
	}
	if float64(datetimeCount)/nn >= parseRateThreshold {
		return DtypeDatetime
	}
	numericLike := float64(numericCount)
	nonNumericLike := nn - numericLike
	if numericLike > mixedShareThreshold*nn && nonNumericLike > mixedShareThreshold*nn {
		return DtypeMixed
	}
	return DtypeText
}

func topValues(counts map[string]int, firstSeen map[string]int, limit int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Value] < firstSeen[out[j].Value]
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func describeNumeric(vals []float64) *NumericDistribution {
	if len(vals) == 0 {
		return nil
	}
	d := &NumericDistribution{Min: vals[0], Max: vals[0]}
	var sum float64
	for _, v := range vals {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
		sum += v
	}
	d.Mean = sum / float64(len(vals))

	var sq float64
	for _, v := range vals {
		diff := v - d.Mean
		sq += diff * diff
	}
	d.Std = math.Sqrt(sq / float64(len(vals)))

	med, mad := medianMAD(vals)
	d.Median = med
	d.OutlierRatio = outlierRatio(vals, med, mad)
	return d
}

// outlierRatio is the fraction of values whose absolute deviation from the
// median exceeds madMultiplier x MAD. Falls back to 0 for fewer than two
// values or a zero MAD.
func outlierRatio(vals []float64, median, mad float64) float64 {
	if len(vals) < 2 || mad == 0 {
		return 0
	}
	cutoff := madMultiplier * mad
	var n int
	for _, v := range vals {
		if math.Abs(v-median) > cutoff {
			n++
		}
	}
	return float64(n) / float64(len(vals))
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		d := v - median
		if d < 0 {
			d = -d
		}
		dev[i] = d
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
