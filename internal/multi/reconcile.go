package multi

import (
	"sort"

	"github.com/KaramelBytes/tabloom-cli/internal/profile"
	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// DefaultMaxTotalRows guards against pathological aggregate inputs.
const DefaultMaxTotalRows = 50_000_000

// Options controls multi-table analysis.
type Options struct {
	// GroupColumn and TargetColumn, when both set, enable the per-group
	// breakdown. Both must exist in every input table.
	GroupColumn  string
	TargetColumn string
	// MaxTotalRows caps the summed row count across files; 0 uses the default.
	MaxTotalRows int
}

// GroupStat is the aggregate for one group key.
type GroupStat struct {
	Key         string  `json:"key"`
	Count       int     `json:"count"`
	TargetCount int     `json:"target_count"`
	TargetMean  float64 `json:"target_mean"`
}

// GroupBreakdown is the per-group aggregation over the target column.
type GroupBreakdown struct {
	GroupColumn  string      `json:"group_column"`
	TargetColumn string      `json:"target_column"`
	Groups       []GroupStat `json:"groups"`
}

// Report is the aggregated multi-table result. Field names are part of the
// wire contract; dashboard rendering keys off them literally.
type Report struct {
	FileCount        int                     `json:"file_count"`
	TotalRowCount    int                     `json:"total_row_count"`
	SharedColumns    []string                `json:"shared_columns"`
	Files            []*profile.TableSummary `json:"files"`
	SchemaDrift      map[string]ColumnDrift  `json:"schema_drift"`
	Insights         []string                `json:"insights"`
	ReasonCandidates []ReasonCandidate       `json:"reason_candidates"`
	Breakdown        *GroupBreakdown         `json:"group_breakdown,omitempty"`
}

// Analyze reconciles the schemas of the given tables, profiles each one, and
// derives insight statements. Tables are processed in input order.
func Analyze(tables []*table.Table, opt Options) (*Report, error) {
	if len(tables) == 0 {
		return nil, &EmptyInputError{}
	}

	limit := opt.MaxTotalRows
	if limit <= 0 {
		limit = DefaultMaxTotalRows
	}

	rep := &Report{
		FileCount: len(tables),
		Files:     make([]*profile.TableSummary, 0, len(tables)),
	}
	for _, t := range tables {
		s, err := profile.Summarize(t)
		if err != nil {
			return nil, err
		}
		rep.Files = append(rep.Files, s)
		rep.TotalRowCount += s.RowCount
	}
	if rep.TotalRowCount > limit {
		return nil, &OverflowGuardError{Total: rep.TotalRowCount, Limit: limit}
	}

	rep.SharedColumns = sharedColumns(tables)
	rep.SchemaDrift = schemaDrift(rep.Files, rep.SharedColumns)

	rep.ReasonCandidates = []ReasonCandidate{}
	for i, t := range tables {
		rep.ReasonCandidates = append(rep.ReasonCandidates, reasonCandidates(t, rep.Files[i])...)
	}

	if opt.GroupColumn != "" && opt.TargetColumn != "" {
		bd, err := groupBreakdown(tables, opt.GroupColumn, opt.TargetColumn)
		if err != nil {
			return nil, err
		}
		rep.Breakdown = bd
	}

	rep.Insights = synthesize(rep)
	return rep, nil
}

// sharedColumns intersects all tables' column-name sets, preserving the
// column order of the first table.
func sharedColumns(tables []*table.Table) []string {
	shared := []string{}
	for _, name := range tables[0].ColumnNames() {
		inAll := true
		for _, t := range tables[1:] {
			if !t.HasColumn(name) {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, name)
		}
	}
	return shared
}

func groupBreakdown(tables []*table.Table, groupCol, targetCol string) (*GroupBreakdown, error) {
	type acc struct {
		count     int
		targetSum float64
		targetN   int
	}
	groups := map[string]*acc{}

	for _, t := range tables {
		gc, err := t.Column(groupCol)
		if err != nil {
			return nil, err
		}
		tc, err := t.Column(targetCol)
		if err != nil {
			return nil, err
		}
		for i := range gc.Cells {
			g := gc.Cells[i]
			if g.IsMissing() {
				continue
			}
			a := groups[g.Raw]
			if a == nil {
				a = &acc{}
				groups[g.Raw] = a
			}
			a.count++
			if v, ok := tc.Cells[i].Float(); ok {
				a.targetSum += v
				a.targetN++
			}
		}
	}

	bd := &GroupBreakdown{GroupColumn: groupCol, TargetColumn: targetCol}
	for key, a := range groups {
		st := GroupStat{Key: key, Count: a.count, TargetCount: a.targetN}
		if a.targetN > 0 {
			st.TargetMean = a.targetSum / float64(a.targetN)
		}
		bd.Groups = append(bd.Groups, st)
	}
	sort.Slice(bd.Groups, func(i, j int) bool { return bd.Groups[i].Key < bd.Groups[j].Key })
	return bd, nil
}
