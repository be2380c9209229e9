package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/tabloom-cli/internal/ingest"
	"github.com/KaramelBytes/tabloom-cli/internal/multi"
	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

var (
	multiGroupColumn  string
	multiTargetColumn string
	multiJSON         bool
	multiOutputPath   string
	multiMaxRows      int
)

var multiCmd = &cobra.Command{
	Use:   "multi <file> [file...]",
	Short: "Reconcile and profile multiple tabular files into one report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := make([]*table.Table, 0, len(args))
		for _, path := range args {
			t, err := ingest.Read(path)
			if err != nil {
				return err
			}
			tables = append(tables, t)
		}

		opt := multi.Options{
			GroupColumn:  multiGroupColumn,
			TargetColumn: multiTargetColumn,
			MaxTotalRows: multiMaxRows,
		}
		if opt.MaxTotalRows <= 0 && cfg != nil && cfg.MaxTotalRows > 0 {
			opt.MaxTotalRows = cfg.MaxTotalRows
		}

		rep, err := multi.Analyze(tables, opt)
		if err != nil {
			return err
		}
		logger.Debug("reconciled",
			zap.Int("files", rep.FileCount),
			zap.Int("total_rows", rep.TotalRowCount),
			zap.Int("insights", len(rep.Insights)))

		if multiJSON {
			out, err := rep.JSON()
			if err != nil {
				return err
			}
			return emit(out, multiOutputPath)
		}
		return emit(rep.Markdown(), multiOutputPath)
	},
}

func init() {
	rootCmd.AddCommand(multiCmd)
	multiCmd.Flags().StringVar(&multiGroupColumn, "group-column", "", "column to group by across files")
	multiCmd.Flags().StringVar(&multiTargetColumn, "target-column", "", "numeric column to aggregate per group (with --group-column)")
	multiCmd.Flags().BoolVar(&multiJSON, "json", false, "emit the report as JSON instead of Markdown")
	multiCmd.Flags().StringVarP(&multiOutputPath, "output", "o", "", "optional path to write the report")
	multiCmd.Flags().IntVar(&multiMaxRows, "max-total-rows", 0, "abort when combined row count exceeds this (0 = config default)")
}
