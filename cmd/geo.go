package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/tabloom-cli/internal/geo"
	"github.com/KaramelBytes/tabloom-cli/internal/ingest"
)

var (
	geoLatColumn   string
	geoLonColumn   string
	geoThresholdKM float64
	geoJSON        bool
	geoOutputPath  string
)

var geoCmd = &cobra.Command{
	Use:   "geo <file>",
	Short: "Flag rows whose coordinates sit far from the dataset centroid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := ingest.Read(args[0])
		if err != nil {
			return err
		}

		threshold := geoThresholdKM
		if !cmd.Flags().Changed("threshold-km") && cfg != nil && cfg.GeoThresholdKM > 0 {
			threshold = cfg.GeoThresholdKM
		}

		res, err := geo.ExtractSuspects(t, geoLatColumn, geoLonColumn, threshold)
		if err != nil {
			return err
		}
		logger.Debug("geo scan",
			zap.Int("valid_rows", res.Count),
			zap.Int("suspects", res.SuspectCount),
			zap.Float64("threshold_km", res.ThresholdKM))

		if geoJSON {
			b, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			return emit(string(b), geoOutputPath)
		}

		var b strings.Builder
		b.WriteString("[GEO SUSPECTS]\n")
		b.WriteString(fmt.Sprintf("Valid rows: %d (normal %d, suspect %d)\n", res.Count, res.NormalCount, res.SuspectCount))
		b.WriteString(fmt.Sprintf("Centroid: %.6f, %.6f\n", res.CentroidLat, res.CentroidLon))
		b.WriteString(fmt.Sprintf("Threshold: %.1f km\n", res.ThresholdKM))
		for _, s := range res.Suspects {
			b.WriteString(fmt.Sprintf("- row %d: (%.6f, %.6f) at %.1f km\n", s.RowIndex, s.Lat, s.Lon, s.DistanceKM))
		}
		return emit(strings.TrimRight(b.String(), "\n"), geoOutputPath)
	},
}

func init() {
	rootCmd.AddCommand(geoCmd)
	geoCmd.Flags().StringVar(&geoLatColumn, "lat", "lat", "latitude column name")
	geoCmd.Flags().StringVar(&geoLonColumn, "lon", "lon", "longitude column name")
	geoCmd.Flags().Float64Var(&geoThresholdKM, "threshold-km", geo.DefaultThresholdKM, "suspect distance threshold in km")
	geoCmd.Flags().BoolVar(&geoJSON, "json", false, "emit the result as JSON")
	geoCmd.Flags().StringVarP(&geoOutputPath, "output", "o", "", "optional path to write output")
}
