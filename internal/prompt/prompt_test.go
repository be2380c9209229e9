package prompt

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/profile"
	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

func sampleSummary(t *testing.T) *profile.TableSummary {
	t.Helper()
	tbl, err := table.FromRecords("orders.csv", []string{"amount", "city"}, [][]string{
		{"10", "Oslo"},
		{"12", "Bergen"},
		{"11", ""},
	})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	s, err := profile.Summarize(tbl)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	return s
}

func TestRenderDeterministic(t *testing.T) {
	s := sampleSummary(t)
	first := Render(s, "what changed?")
	for i := 0; i < 10; i++ {
		if got := Render(s, "what changed?"); got != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

func TestRenderSections(t *testing.T) {
	out := Render(sampleSummary(t), "Which city orders the most?")
	for _, section := range []string{"[DATASET SUMMARY]", "[SCHEMA]", "[QUESTION]", "[INSTRUCTIONS]"} {
		if !strings.Contains(out, section) {
			t.Errorf("output missing section %s", section)
		}
	}
	if !strings.Contains(out, "Which city orders the most?") {
		t.Errorf("question must appear verbatim")
	}
	if !strings.Contains(out, "- amount: numeric") {
		t.Errorf("schema line for amount missing:\n%s", out)
	}
	if !strings.Contains(out, "outlier ratio") {
		t.Errorf("numeric distribution line missing")
	}
	if !strings.Contains(out, "Rows: 3") {
		t.Errorf("row count missing")
	}
}

func TestRenderEscapesTopValues(t *testing.T) {
	tbl, err := table.FromRecords("t.csv", []string{"c"}, [][]string{{"a|b\nc"}})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	s, err := profile.Summarize(tbl)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	out := Render(s, "q")
	if !strings.Contains(out, "a/b c(1)") {
		t.Errorf("top value not sanitized:\n%s", out)
	}
}

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"ab", 1},
		{"abcdefgh", 2},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
