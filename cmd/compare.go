package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tabloom-cli/internal/compare"
	"github.com/KaramelBytes/tabloom-cli/internal/ingest"
)

var (
	cmpJSON       bool
	cmpOutputPath string
)

var compareCmd = &cobra.Command{
	Use:   "compare <before> <after>",
	Short: "Compare value distributions between two dataset versions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		before, err := ingest.Read(args[0])
		if err != nil {
			return err
		}
		after, err := ingest.Read(args[1])
		if err != nil {
			return err
		}

		res := compare.Tables(before, after)

		if cmpJSON {
			b, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			return emit(string(b), cmpOutputPath)
		}

		var b strings.Builder
		b.WriteString("[DATASET COMPARISON]\n")
		b.WriteString(fmt.Sprintf("Before: %s (%d rows, fingerprint %s)\n", res.Before.SourceName, res.Before.RowCount, short(res.Before.Fingerprint)))
		b.WriteString(fmt.Sprintf("After:  %s (%d rows, fingerprint %s)\n", res.After.SourceName, res.After.RowCount, short(res.After.Fingerprint)))
		if len(res.CommonColumns) == 0 {
			b.WriteString("No common columns to compare.\n")
			return emit(strings.TrimRight(b.String(), "\n"), cmpOutputPath)
		}

		b.WriteString("\n| column | type | PSI | JS divergence | chi-square |\n")
		b.WriteString("|---|---|---:|---:|---:|\n")
		names := make([]string, 0, len(res.ColumnMetrics))
		for name := range res.ColumnMetrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			m := res.ColumnMetrics[name]
			b.WriteString(fmt.Sprintf("| %s | %s | %.4f | %.4f | %.4f |\n", name, m.Type, m.PSI, m.JSDivergence, m.ChiSquare))
		}
		return emit(strings.TrimRight(b.String(), "\n"), cmpOutputPath)
	},
}

func short(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().BoolVar(&cmpJSON, "json", false, "emit the comparison as JSON")
	compareCmd.Flags().StringVarP(&cmpOutputPath, "output", "o", "", "optional path to write output")
}
