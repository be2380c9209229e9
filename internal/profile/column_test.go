package profile

import (
	"math"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

func textCells(vals ...string) []table.Cell {
	cells := make([]table.Cell, len(vals))
	for i, v := range vals {
		cells[i] = table.Text(v)
	}
	return cells
}

func TestInferDtype(t *testing.T) {
	cases := []struct {
		name  string
		cells []table.Cell
		want  Dtype
	}{
		{"all numeric", textCells("1", "2.5", "-3", "4e2"), DtypeNumeric},
		{"boolean literals", textCells("true", "False", "yes", "NO"), DtypeBoolean},
		{"dates", textCells("2024-01-02", "2024/03/04", "2024.05.06", "2024-01-02 15:04:05"), DtypeDatetime},
		{"plain text", textCells("red", "green", "blue"), DtypeText},
		{"mixed", textCells("1", "2", "3", "4", "5", "6", "7", "oops"), DtypeMixed},
		{"all missing", []table.Cell{table.Missing(), table.Missing()}, DtypeText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ProfileColumn("c", tc.cells)
			if p.Dtype != tc.want {
				t.Fatalf("Dtype = %s, want %s", p.Dtype, tc.want)
			}
		})
	}
}

func TestNumericDominatesBoolean(t *testing.T) {
	// 0/1 literals parse as both numeric and boolean; numeric wins.
	p := ProfileColumn("flag", textCells("0", "1", "1", "0"))
	if p.Dtype != DtypeNumeric {
		t.Fatalf("Dtype = %s, want %s", p.Dtype, DtypeNumeric)
	}
}

func TestMissingCountsSentinelOnly(t *testing.T) {
	cells := []table.Cell{table.Text("0"), table.Missing(), table.Text("0"), table.Missing()}
	p := ProfileColumn("c", cells)
	if p.MissingCount != 2 {
		t.Fatalf("MissingCount = %d, want 2", p.MissingCount)
	}
	if p.MissingRatio != 0.5 {
		t.Fatalf("MissingRatio = %v, want 0.5", p.MissingRatio)
	}
	if p.UniqueCount != 1 {
		t.Fatalf("UniqueCount = %d, want 1", p.UniqueCount)
	}
}

func TestTopValuesTieBreaksByFirstAppearance(t *testing.T) {
	p := ProfileColumn("c", textCells("b", "a", "b", "a", "c"))
	if len(p.TopValues) != 3 {
		t.Fatalf("len(TopValues) = %d, want 3", len(p.TopValues))
	}
	// a and b tie at 2; b appeared first
	if p.TopValues[0].Value != "b" || p.TopValues[1].Value != "a" {
		t.Fatalf("TopValues order = %v, want b then a", p.TopValues)
	}
	if p.TopValues[2].Value != "c" || p.TopValues[2].Count != 1 {
		t.Fatalf("TopValues[2] = %v, want {c 1}", p.TopValues[2])
	}
}

func TestTopValuesCap(t *testing.T) {
	p := ProfileColumn("c", textCells("a", "b", "c", "d", "e", "f", "g"))
	if len(p.TopValues) != 5 {
		t.Fatalf("len(TopValues) = %d, want 5", len(p.TopValues))
	}
}

func TestDescribeNumericPopulationStd(t *testing.T) {
	p := ProfileColumn("c", textCells("2", "4", "4", "4", "5", "5", "7", "9"))
	if p.Numeric == nil {
		t.Fatalf("Numeric = nil")
	}
	// classic population std example: mean 5, std 2
	if p.Numeric.Mean != 5 {
		t.Errorf("Mean = %v, want 5", p.Numeric.Mean)
	}
	if math.Abs(p.Numeric.Std-2) > 1e-12 {
		t.Errorf("Std = %v, want 2", p.Numeric.Std)
	}
	if p.Numeric.Min != 2 || p.Numeric.Max != 9 {
		t.Errorf("Min/Max = %v/%v, want 2/9", p.Numeric.Min, p.Numeric.Max)
	}
}

func TestOutlierRatio(t *testing.T) {
	// 9 tight values plus one far spike: median 5, MAD 1, cutoff 3.
	p := ProfileColumn("c", textCells("4", "5", "6", "5", "4", "6", "5", "4", "6", "100"))
	if p.Numeric == nil {
		t.Fatalf("Numeric = nil")
	}
	if math.Abs(p.Numeric.OutlierRatio-0.1) > 1e-12 {
		t.Fatalf("OutlierRatio = %v, want 0.1", p.Numeric.OutlierRatio)
	}
}

func TestOutlierSpike(t *testing.T) {
	p := ProfileColumn("c", textCells("1", "2", "3", "4", "1000"))
	if p.Numeric == nil {
		t.Fatalf("Numeric = nil")
	}
	if p.Numeric.Median != 3 {
		t.Errorf("Median = %v, want 3", p.Numeric.Median)
	}
	if math.Abs(p.Numeric.OutlierRatio-0.2) > 1e-12 {
		t.Errorf("OutlierRatio = %v, want 0.2", p.Numeric.OutlierRatio)
	}
}

func TestOutlierRatioDegenerate(t *testing.T) {
	single := ProfileColumn("c", textCells("7"))
	if single.Numeric == nil || single.Numeric.OutlierRatio != 0 {
		t.Fatalf("single value OutlierRatio should be 0")
	}
	constant := ProfileColumn("c", textCells("3", "3", "3", "3"))
	if constant.Numeric == nil || constant.Numeric.OutlierRatio != 0 {
		t.Fatalf("zero MAD OutlierRatio should be 0")
	}
}

func TestEmptyColumnProfile(t *testing.T) {
	p := ProfileColumn("empty", nil)
	if p.Dtype != DtypeText {
		t.Errorf("Dtype = %s, want %s", p.Dtype, DtypeText)
	}
	if p.MissingRatio != 0 || p.MissingCount != 0 {
		t.Errorf("empty column should have zero missing stats")
	}
	if p.Numeric != nil {
		t.Errorf("empty column should have no numeric distribution")
	}
	if len(p.TopValues) != 0 {
		t.Errorf("empty column should have no top values")
	}
}
