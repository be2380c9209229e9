package multi

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

func analyzeOne(t *testing.T, tbl *table.Table) *Report {
	t.Helper()
	rep, err := Analyze([]*table.Table{tbl}, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return rep
}

func candidateByRule(cands []ReasonCandidate, rule string) *ReasonCandidate {
	for i := range cands {
		if cands[i].Rule == rule {
			return &cands[i]
		}
	}
	return nil
}

func TestMissingConcentrationCandidate(t *testing.T) {
	rep := analyzeOne(t, mustTable(t, "gaps.csv", []string{"a", "b"}, [][]string{
		{"1", "x"}, {"", "y"}, {"", "z"}, {"1", "w"},
	}))
	c := candidateByRule(rep.ReasonCandidates, "missing concentration")
	if c == nil {
		t.Fatalf("missing concentration candidate not found: %v", rep.ReasonCandidates)
	}
	if c.File != "gaps.csv" || c.Column != "a" || c.Score != 50 {
		t.Fatalf("candidate = %+v, want gaps.csv/a with score 50", c)
	}
	if !hasInsight(rep.Insights, "gaps.csv: likely cause [missing concentration]") {
		t.Fatalf("reason insight missing: %v", rep.Insights)
	}
}

func TestCategoryBiasCandidate(t *testing.T) {
	rep := analyzeOne(t, mustTable(t, "colors.csv", []string{"color"}, [][]string{
		{"red"}, {"red"}, {"red"}, {"blue"},
	}))
	c := candidateByRule(rep.ReasonCandidates, "category bias")
	if c == nil {
		t.Fatalf("category bias candidate not found: %v", rep.ReasonCandidates)
	}
	if c.Column != "color" || c.Score != 75 {
		t.Fatalf("candidate = %+v, want color with score 75", c)
	}
	if !strings.Contains(c.Reason, `"red"`) {
		t.Fatalf("reason should name the dominant value: %q", c.Reason)
	}

	// just under the 65% threshold: 2 of 4
	rep = analyzeOne(t, mustTable(t, "even.csv", []string{"color"}, [][]string{
		{"red"}, {"red"}, {"blue"}, {"green"},
	}))
	if candidateByRule(rep.ReasonCandidates, "category bias") != nil {
		t.Fatalf("category bias below threshold should not fire: %v", rep.ReasonCandidates)
	}
}

func TestUnitMismatchCandidate(t *testing.T) {
	rep := analyzeOne(t, mustTable(t, "weights.csv", []string{"w"}, [][]string{
		{"10kg"}, {"20kg"}, {"30lb"}, {"40lb"},
	}))
	c := candidateByRule(rep.ReasonCandidates, "unit mismatch")
	if c == nil {
		t.Fatalf("unit mismatch candidate not found: %v", rep.ReasonCandidates)
	}
	// 2 units at full coverage: 18 + 50
	if c.Column != "w" || c.Score != 68 {
		t.Fatalf("candidate = %+v, want w with score 68", c)
	}
	if !strings.Contains(c.Reason, "kg") || !strings.Contains(c.Reason, "lb") {
		t.Fatalf("reason should list both units: %q", c.Reason)
	}
}

func TestExtractUnit(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"10kg", "kg"},
		{"3.5 KM/h", "km/h"},
		{"12%", "%"},
		{"plain", ""},        // no digits
		{"10", ""},           // no suffix
		{"10longsuffix", ""}, // too long to be a unit
	}
	for _, tc := range cases {
		if got := extractUnit(tc.value); got != tc.want {
			t.Errorf("extractUnit(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestRecentChangeCandidate(t *testing.T) {
	rep := analyzeOne(t, mustTable(t, "series.csv", []string{"day", "v"}, [][]string{
		{"2024-01-01", "10"},
		{"2024-01-02", "10"},
		{"2024-01-03", "10"},
		{"2024-01-04", "100"},
		{"2024-01-05", "100"},
		{"2024-01-06", "100"},
	}))
	c := candidateByRule(rep.ReasonCandidates, "recent change")
	if c == nil {
		t.Fatalf("recent change candidate not found: %v", rep.ReasonCandidates)
	}
	// |100-10|/10 caps the score at 100
	if c.Column != "v" || c.Score != 100 {
		t.Fatalf("candidate = %+v, want v with score 100", c)
	}
}

func TestRecentChangeNeedsEnoughPoints(t *testing.T) {
	rep := analyzeOne(t, mustTable(t, "short.csv", []string{"day", "v"}, [][]string{
		{"2024-01-01", "10"},
		{"2024-01-02", "10"},
		{"2024-01-03", "100"},
	}))
	if candidateByRule(rep.ReasonCandidates, "recent change") != nil {
		t.Fatalf("fewer than six dated points should not fire: %v", rep.ReasonCandidates)
	}
}

func TestReasonCandidatesCap(t *testing.T) {
	rep := analyzeOne(t, mustTable(t, "busy.csv", []string{"m", "c", "u", "day", "v"}, [][]string{
		{"1", "red", "1kg", "2024-01-01", "10"},
		{"1", "red", "2kg", "2024-01-02", "10"},
		{"1", "red", "3lb", "2024-01-03", "10"},
		{"", "red", "4lb", "2024-01-04", "100"},
		{"", "red", "5kg", "2024-01-05", "100"},
		{"", "red", "6lb", "2024-01-06", "100"},
	}))
	if len(rep.ReasonCandidates) != 3 {
		t.Fatalf("candidates = %v, want top 3", rep.ReasonCandidates)
	}
	// all four rules fire; missing concentration (score 50) is dropped
	if candidateByRule(rep.ReasonCandidates, "missing concentration") != nil {
		t.Fatalf("lowest-scored rule should be cut: %v", rep.ReasonCandidates)
	}
	// score ties break by rule name, descending
	if rep.ReasonCandidates[0].Rule != "recent change" || rep.ReasonCandidates[1].Rule != "category bias" {
		t.Fatalf("order = %v, want recent change, category bias, unit mismatch", rep.ReasonCandidates)
	}
}
