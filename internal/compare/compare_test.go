package compare

import (
	"math"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

func mustTable(t *testing.T, source string, header []string, records [][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(source, header, records)
	if err != nil {
		t.Fatalf("FromRecords(%s): %v", source, err)
	}
	return tbl
}

func TestIdenticalTablesShowNoDrift(t *testing.T) {
	records := [][]string{{"1", "red"}, {"2", "blue"}, {"3", "red"}}
	before := mustTable(t, "v1.csv", []string{"n", "color"}, records)
	after := mustTable(t, "v2.csv", []string{"n", "color"}, records)

	res := Tables(before, after)
	if len(res.CommonColumns) != 2 {
		t.Fatalf("CommonColumns = %v, want 2", res.CommonColumns)
	}
	for name, m := range res.ColumnMetrics {
		if math.Abs(m.PSI) > 1e-6 {
			t.Errorf("%s: PSI = %v, want ~0", name, m.PSI)
		}
		if math.Abs(m.JSDivergence) > 1e-6 {
			t.Errorf("%s: JSDivergence = %v, want ~0", name, m.JSDivergence)
		}
		if m.ChiSquare > 1e-6 {
			t.Errorf("%s: ChiSquare = %v, want ~0", name, m.ChiSquare)
		}
	}
}

func TestShiftedDistributionHasPositivePSI(t *testing.T) {
	before := mustTable(t, "v1.csv", []string{"n"}, [][]string{{"1"}, {"1"}, {"2"}, {"2"}})
	after := mustTable(t, "v2.csv", []string{"n"}, [][]string{{"9"}, {"9"}, {"10"}, {"10"}})

	res := Tables(before, after)
	m, ok := res.ColumnMetrics["n"]
	if !ok {
		t.Fatalf("metric for n missing")
	}
	if m.Type != "numeric" {
		t.Fatalf("Type = %s, want numeric", m.Type)
	}
	if m.PSI <= 0 {
		t.Errorf("PSI = %v, want > 0", m.PSI)
	}
	if m.JSDivergence <= 0 {
		t.Errorf("JSDivergence = %v, want > 0", m.JSDivergence)
	}
}

func TestCategoricalComparison(t *testing.T) {
	before := mustTable(t, "v1.csv", []string{"c"}, [][]string{{"a"}, {"a"}, {"b"}})
	after := mustTable(t, "v2.csv", []string{"c"}, [][]string{{"b"}, {"b"}, {"c"}})

	res := Tables(before, after)
	m := res.ColumnMetrics["c"]
	if m.Type != "categorical" {
		t.Fatalf("Type = %s, want categorical", m.Type)
	}
	// a, b, c across both sides
	if len(m.Buckets) != 3 {
		t.Fatalf("Buckets = %v, want a, b, c", m.Buckets)
	}
	if m.PSI <= 0 {
		t.Errorf("PSI = %v, want > 0", m.PSI)
	}
}

func TestMissingValuesCountAsCategory(t *testing.T) {
	before := mustTable(t, "v1.csv", []string{"c"}, [][]string{{"a"}, {""}})
	after := mustTable(t, "v2.csv", []string{"c"}, [][]string{{"a"}, {"a"}})

	res := Tables(before, after)
	m := res.ColumnMetrics["c"]
	if m.Type != "categorical" {
		t.Fatalf("Type = %s, want categorical", m.Type)
	}
	found := false
	for _, b := range m.Buckets {
		if b == "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("empty-string bucket for missing values not present: %v", m.Buckets)
	}
}

func TestConstantNumericColumn(t *testing.T) {
	before := mustTable(t, "v1.csv", []string{"n"}, [][]string{{"5"}, {"5"}})
	after := mustTable(t, "v2.csv", []string{"n"}, [][]string{{"5"}, {"5"}})

	res := Tables(before, after)
	m := res.ColumnMetrics["n"]
	if m.Type != "numeric" {
		t.Fatalf("Type = %s, want numeric", m.Type)
	}
	if len(m.Buckets) != 1 {
		t.Fatalf("constant column should collapse to one bucket: %v", m.Buckets)
	}
	if m.BeforeCounts[0] != 2 || m.AfterCounts[0] != 2 {
		t.Fatalf("counts = %v/%v, want 2/2", m.BeforeCounts, m.AfterCounts)
	}
}

func TestFingerprintStability(t *testing.T) {
	a := mustTable(t, "v1.csv", []string{"n"}, [][]string{{"1"}, {"2"}})
	b := mustTable(t, "v1.csv", []string{"n"}, [][]string{{"1"}, {"2"}})
	c := mustTable(t, "v1.csv", []string{"n"}, [][]string{{"1"}, {"3"}})

	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("identical tables should share a fingerprint")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Errorf("different cell contents should change the fingerprint")
	}
}
