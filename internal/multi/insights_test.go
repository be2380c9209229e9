package multi

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

func analyzeInsights(t *testing.T, tables []*table.Table) []string {
	t.Helper()
	rep, err := Analyze(tables, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return rep.Insights
}

func hasInsight(insights []string, substr string) bool {
	for _, in := range insights {
		if strings.Contains(in, substr) {
			return true
		}
	}
	return false
}

func TestMissingHotspotBoundary(t *testing.T) {
	// exactly 20% missing: 1 of 5 rows
	at := mustTable(t, "at.csv", []string{"c"}, [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {""}})
	insights := analyzeInsights(t, []*table.Table{at})
	if !hasInsight(insights, "at.csv / c: missing ratio 20.0%") {
		t.Fatalf("missing hotspot at exactly 20%% should fire: %v", insights)
	}

	// just under: 1 of 6 rows
	under := mustTable(t, "under.csv", []string{"c"}, [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, {""}})
	insights = analyzeInsights(t, []*table.Table{under})
	if hasInsight(insights, "missing ratio") {
		t.Fatalf("missing hotspot below 20%% should not fire: %v", insights)
	}
}

func TestOutlierHotspot(t *testing.T) {
	// one spike among ten values: outlier ratio 0.1, at the threshold
	spiky := mustTable(t, "spiky.csv", []string{"v"}, [][]string{
		{"4"}, {"5"}, {"6"}, {"5"}, {"4"}, {"6"}, {"5"}, {"4"}, {"6"}, {"100"},
	})
	insights := analyzeInsights(t, []*table.Table{spiky})
	if !hasInsight(insights, "spiky.csv / v: outlier ratio 10.0%") {
		t.Fatalf("outlier hotspot at exactly 10%% should fire: %v", insights)
	}
}

func TestDriftInsight(t *testing.T) {
	a := mustTable(t, "a.csv", []string{"amount"}, [][]string{{"10"}, {"10"}})
	b := mustTable(t, "b.csv", []string{"amount"}, [][]string{{"20"}, {"20"}})
	insights := analyzeInsights(t, []*table.Table{a, b})
	// relative diff |10-20|/20 = 50%
	if !hasInsight(insights, "column amount: mean drift between a.csv (10) and b.csv (20), delta 50.0%") {
		t.Fatalf("drift insight missing: %v", insights)
	}
}

func TestDriftAtThresholdDoesNotFire(t *testing.T) {
	// |80-100|/100 = exactly 20%, rule requires strictly greater
	a := mustTable(t, "a.csv", []string{"amount"}, [][]string{{"80"}, {"80"}})
	b := mustTable(t, "b.csv", []string{"amount"}, [][]string{{"100"}, {"100"}})
	insights := analyzeInsights(t, []*table.Table{a, b})
	if hasInsight(insights, "mean drift") {
		t.Fatalf("drift at exactly 20%% should not fire: %v", insights)
	}
}

func TestRelativeDiff(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{10, 0, 1},
		{-10, 10, 2},
		{100, 80, 0.2},
	}
	for _, tc := range cases {
		if got := relativeDiff(tc.a, tc.b); got != tc.want {
			t.Errorf("relativeDiff(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMarkdownReport(t *testing.T) {
	a := mustTable(t, "a.csv", []string{"x"}, [][]string{{"1"}})
	rep, err := Analyze([]*table.Table{a}, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	md := rep.Markdown()
	for _, want := range []string{"[MULTI-DATASET REPORT]", "[FILE] a.csv", "| column | dtype |"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
