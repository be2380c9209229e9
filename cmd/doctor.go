package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tabloom-cli/internal/ai"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the local model runtime is reachable and ready",
	RunE: func(cmd *cobra.Command, args []string) error {
		host := "http://127.0.0.1:11434"
		if cfg != nil && cfg.OllamaHost != "" {
			host = cfg.OllamaHost
		}
		client := newOllamaClient()

		models, err := client.ListModels(cmd.Context())
		if err != nil {
			var unreachable *ai.UnreachableError
			if errors.As(err, &unreachable) {
				fmt.Printf("✗ Runtime at %s is not reachable: %v\n", host, unreachable.Err)
				fmt.Println("  Start Ollama with `ollama serve` and retry.")
				return err
			}
			return err
		}
		fmt.Printf("✓ Runtime at %s is reachable\n", host)

		if len(models) == 0 {
			fmt.Println("⚠ No models pulled yet. Run `ollama pull <model>` first.")
			return nil
		}
		fmt.Printf("✓ %d model(s) available:\n", len(models))
		for _, m := range models {
			fmt.Printf("  - %s\n", m)
		}

		want := defaultModel()
		for _, m := range models {
			if m == want {
				fmt.Printf("✓ Default model %s is present\n", want)
				return nil
			}
		}
		fmt.Printf("⚠ Default model %s is not pulled. Run `ollama pull %s` or set another default.\n", want, want)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
