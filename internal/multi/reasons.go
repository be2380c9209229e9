package multi

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/tabloom-cli/internal/profile"
	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

const (
	// reasonTopK caps the candidates kept per file.
	reasonTopK = 3
	// categoryBiasThreshold is the dominant-value share that marks a text
	// column as biased.
	categoryBiasThreshold = 0.65
	// unitCoverageThreshold is the top-value share that must carry units
	// before a unit mix is reported.
	unitCoverageThreshold = 0.2
	// recentChangeThreshold is the relative mean change between the recent
	// and previous windows of a dated series.
	recentChangeThreshold = 0.5
)

// ReasonCandidate is a scored hypothesis for why a file's data looks the
// way it does.
type ReasonCandidate struct {
	File   string  `json:"file"`
	Rule   string  `json:"rule"`
	Column string  `json:"column"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// reasonCandidates evaluates every rule against one file and keeps the top
// scored candidates. Ties order by rule name, descending.
func reasonCandidates(t *table.Table, s *profile.TableSummary) []ReasonCandidate {
	var out []ReasonCandidate
	for _, rc := range []*ReasonCandidate{
		missingConcentration(s),
		categoryBias(s),
		unitMismatch(s),
		recentChange(t, s),
	} {
		if rc != nil {
			rc.File = s.Source
			out = append(out, *rc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Rule > out[j].Rule
	})
	if len(out) > reasonTopK {
		out = out[:reasonTopK]
	}
	return out
}

// dominantRatio is the share of non-missing values held by the most
// frequent value.
func dominantRatio(p profile.ColumnProfile, rowCount int) float64 {
	nonMissing := rowCount - p.MissingCount
	if nonMissing <= 0 || len(p.TopValues) == 0 {
		return 0
	}
	return float64(p.TopValues[0].Count) / float64(nonMissing)
}

func missingConcentration(s *profile.TableSummary) *ReasonCandidate {
	var best *profile.ColumnProfile
	for i := range s.Profiles {
		p := &s.Profiles[i]
		if p.MissingRatio < MissingHotspotThreshold {
			continue
		}
		if best == nil || p.MissingRatio > best.MissingRatio {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	return &ReasonCandidate{
		Rule:   "missing concentration",
		Column: best.Name,
		Score:  math.Min(100, best.MissingRatio*100),
		Reason: fmt.Sprintf("%s: %.1f%% of values are missing", best.Name, best.MissingRatio*100),
	}
}

func categoryBias(s *profile.TableSummary) *ReasonCandidate {
	var bestP *profile.ColumnProfile
	var bestDom float64
	for i := range s.Profiles {
		p := &s.Profiles[i]
		if p.Dtype != profile.DtypeText {
			continue
		}
		dom := dominantRatio(*p, s.RowCount)
		if dom < categoryBiasThreshold {
			continue
		}
		if bestP == nil || dom > bestDom {
			bestP, bestDom = p, dom
		}
	}
	if bestP == nil {
		return nil
	}
	return &ReasonCandidate{
		Rule:   "category bias",
		Column: bestP.Name,
		Score:  math.Min(100, bestDom*100),
		Reason: fmt.Sprintf("%s is dominated by %q (%.1f%% of values)", bestP.Name, bestP.TopValues[0].Value, bestDom*100),
	}
}

var unitSuffixRe = regexp.MustCompile(`[A-Za-z/%]+$`)

// extractUnit pulls a trailing unit suffix (kg, km/h, %) from a value that
// carries digits. Long suffixes are treated as free text, not units.
func extractUnit(value string) string {
	v := strings.TrimSpace(value)
	if v == "" || !strings.ContainsAny(v, "0123456789") {
		return ""
	}
	unit := unitSuffixRe.FindString(v)
	if unit == "" || len(unit) > 8 {
		return ""
	}
	return strings.ToLower(unit)
}

func unitMismatch(s *profile.TableSummary) *ReasonCandidate {
	var best *ReasonCandidate
	for _, p := range s.Profiles {
		nonMissing := s.RowCount - p.MissingCount
		if nonMissing <= 0 {
			continue
		}
		units := map[string]float64{}
		for _, tv := range p.TopValues {
			u := extractUnit(tv.Value)
			if u == "" {
				continue
			}
			units[u] += float64(tv.Count) / float64(nonMissing)
		}
		if len(units) < 2 {
			continue
		}
		var coverage float64
		names := make([]string, 0, len(units))
		for u, r := range units {
			coverage += r
			names = append(names, u)
		}
		if coverage < unitCoverageThreshold {
			continue
		}
		sort.Strings(names)
		cand := &ReasonCandidate{
			Rule:   "unit mismatch",
			Column: p.Name,
			Score:  math.Min(100, float64(len(units)-1)*18+coverage*50),
			Reason: fmt.Sprintf("%s mixes units: %s", p.Name, strings.Join(names, ", ")),
		}
		if best == nil || cand.Score > best.Score {
			best = cand
		}
	}
	return best
}

type seriesPoint struct {
	when time.Time
	vals map[string]float64
}

// recentChange splits each dated numeric series into a recent window and
// the window before it and reports the column whose mean moved most.
func recentChange(t *table.Table, s *profile.TableSummary) *ReasonCandidate {
	var dateCols, numCols []string
	for _, p := range s.Profiles {
		switch p.Dtype {
		case profile.DtypeDatetime:
			dateCols = append(dateCols, p.Name)
		case profile.DtypeNumeric:
			numCols = append(numCols, p.Name)
		}
	}
	if len(dateCols) == 0 || len(numCols) == 0 {
		return nil
	}

	numCells := map[string][]table.Cell{}
	for _, name := range numCols {
		if c, err := t.Column(name); err == nil {
			numCells[name] = c.Cells
		}
	}

	var best *ReasonCandidate
	for _, dateCol := range dateCols {
		dc, err := t.Column(dateCol)
		if err != nil {
			continue
		}
		var series []seriesPoint
		for i := range dc.Cells {
			when, ok := profile.ParseDatetime(dc.Cells[i].Raw)
			if !ok {
				continue
			}
			vals := map[string]float64{}
			for _, name := range numCols {
				cells := numCells[name]
				if i >= len(cells) {
					continue
				}
				if v, ok := cells[i].Float(); ok {
					vals[name] = v
				}
			}
			if len(vals) > 0 {
				series = append(series, seriesPoint{when: when, vals: vals})
			}
		}
		if len(series) < 6 {
			continue
		}
		sort.Slice(series, func(i, j int) bool { return series[i].when.Before(series[j].when) })

		window := len(series) / 5
		if window < 3 {
			window = 3
		}
		lo := len(series) - 2*window
		if lo < 0 {
			lo = 0
		}
		prev := series[lo : len(series)-window]
		recent := series[len(series)-window:]
		if len(prev) == 0 {
			continue
		}

		for _, name := range numCols {
			prevMean, pn := windowMean(prev, name)
			recentMean, rn := windowMean(recent, name)
			if pn < 2 || rn < 2 {
				continue
			}
			baseline := math.Max(math.Abs(prevMean), 1e-9)
			change := math.Abs(recentMean-prevMean) / baseline
			if change < recentChangeThreshold {
				continue
			}
			cand := &ReasonCandidate{
				Rule:   "recent change",
				Column: name,
				Score:  math.Min(100, change*100),
				Reason: fmt.Sprintf("%s mean moved %.1f%% in the latest %s window", name, change*100, dateCol),
			}
			if best == nil || cand.Score > best.Score {
				best = cand
			}
		}
	}
	return best
}

func windowMean(points []seriesPoint, col string) (float64, int) {
	var sum float64
	var n int
	for _, p := range points {
		if v, ok := p.vals[col]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
