package multi

import (
	"github.com/KaramelBytes/tabloom-cli/internal/profile"
)

// ColumnDrift describes how one shared column varies across files.
type ColumnDrift struct {
	DtypeChanged            bool    `json:"dtype_changed"`
	MissingRatioRange       float64 `json:"missing_ratio_range"`
	DominantValueRatioRange float64 `json:"dominant_value_ratio_range"`
	MeanRange               float64 `json:"mean_range"`
}

// schemaDrift compares each shared column's profile across the per-file
// summaries. Ranges are max minus min over the files that carry the column.
func schemaDrift(files []*profile.TableSummary, shared []string) map[string]ColumnDrift {
	drift := make(map[string]ColumnDrift, len(shared))
	for _, col := range shared {
		dtypes := map[profile.Dtype]struct{}{}
		var missing, dominant, means []float64
		for _, f := range files {
			p, ok := f.Profile(col)
			if !ok {
				continue
			}
			dtypes[p.Dtype] = struct{}{}
			missing = append(missing, p.MissingRatio)
			dominant = append(dominant, dominantRatio(p, f.RowCount))
			if p.Numeric != nil {
				means = append(means, p.Numeric.Mean)
			}
		}
		drift[col] = ColumnDrift{
			DtypeChanged:            len(dtypes) > 1,
			MissingRatioRange:       spread(missing),
			DominantValueRatioRange: spread(dominant),
			MeanRange:               spread(means),
		}
	}
	return drift
}

// spread is max minus min; 0 for an empty slice.
func spread(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}
