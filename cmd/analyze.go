package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/tabloom-cli/internal/ai"
	"github.com/KaramelBytes/tabloom-cli/internal/profile"
	"github.com/KaramelBytes/tabloom-cli/internal/prompt"
	"github.com/KaramelBytes/tabloom-cli/internal/recommend"
)

var (
	anaQuestion   string
	anaModel      string
	anaAsk        bool
	anaStream     bool
	anaJSON       bool
	anaOutputPath string
	anaSheetName  string
	anaSheetIndex int
	anaCharts     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Profile a CSV/TSV/XLSX file and render an AI-ready prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := loadTable(path, anaSheetName, anaSheetIndex)
		if err != nil {
			return err
		}
		summary, err := profile.Summarize(t)
		if err != nil {
			return err
		}
		logger.Debug("profiled",
			zap.String("source", summary.Source),
			zap.Int("rows", summary.RowCount),
			zap.Int("columns", summary.ColumnCount))

		if anaJSON {
			b, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal summary: %w", err)
			}
			return emit(string(b), anaOutputPath)
		}

		rendered := prompt.Render(summary, anaQuestion)
		if anaCharts {
			rec := recommend.ChartTypes(anaQuestion)
			fmt.Fprintf(os.Stderr, "Chart suggestion (%s): %v\n", rec.Intent, rec.ChartTypes)
		}

		maxTokens := 4096
		if cfg != nil && cfg.MaxTokens > 0 {
			maxTokens = cfg.MaxTokens
		}
		if est := prompt.EstimateTokens(rendered); est > maxTokens {
			fmt.Fprintf(os.Stderr, "⚠ Warning: prompt is ~%d tokens, above the configured limit of %d\n", est, maxTokens)
		}

		if !anaAsk {
			return emit(rendered, anaOutputPath)
		}

		model := anaModel
		if model == "" {
			model = defaultModel()
		}
		client := newRuntime()
		req := ai.GenerateRequest{
			Model:    model,
			Messages: []ai.Message{{Role: "user", Content: rendered}},
		}
		if cfg != nil {
			req.MaxTokens = cfg.MaxTokens
			req.Temperature = cfg.Temperature
		}
		if anaStream {
			stream, ok := client.(ai.StreamRuntime)
			if !ok {
				return fmt.Errorf("runtime does not support streaming")
			}
			return stream.GenerateStream(cmd.Context(), req, func(delta string) {
				fmt.Print(delta)
			})
		}
		resp, err := client.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty response from model %s", model)
		}
		return emit(resp.Choices[0].Message.Content, anaOutputPath)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaQuestion, "question", "q", "What stands out in this dataset?", "analysis question to ground the prompt")
	analyzeCmd.Flags().StringVarP(&anaModel, "model", "m", "", "model name (defaults to config default_model)")
	analyzeCmd.Flags().BoolVar(&anaAsk, "ask", false, "send the rendered prompt to the local runtime and print the answer")
	analyzeCmd.Flags().BoolVar(&anaStream, "stream", false, "stream the model answer (with --ask)")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit the profile summary as JSON instead of a prompt")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write output")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().BoolVar(&anaCharts, "recommend-charts", false, "print chart type suggestions for the question")
}

func emit(content, outputPath string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("✓ Wrote output to %s\n", outputPath)
		return nil
	}
	fmt.Println(content)
	return nil
}
