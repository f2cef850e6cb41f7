package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"rule-sync/core/config"
	"rule-sync/core/exporter"
	"rule-sync/core/kibana"
	"rule-sync/core/logger"
	"rule-sync/core/reconcile"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	// Flags for the detect command
	detectEndpoint     string
	detectAPIKey       string
	detectSpace        string
	detectBaselineFile string
	detectNoCLI        bool
)

// detectCmd runs one reconciliation pass and prints the change report.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect rule changes against a baseline",
	Long: `Runs one reconciliation pass against the detection engine and prints
the change report as JSON.

The baseline file holds the snapshot array a previous run produced under
"current_rules". Without a baseline every rule is reported as new.

Examples:
  # First run, no baseline
  rule-sync detect --endpoint https://kibana:5601 --api-key KEY

  # Diff against a stored baseline
  rule-sync detect --endpoint https://kibana:5601 --api-key KEY --baseline state.json

  # Skip the CLI export path
  rule-sync detect --endpoint https://kibana:5601 --api-key KEY --no-cli`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectEndpoint, "endpoint", "", "Kibana base URL (overrides config)")
	detectCmd.Flags().StringVar(&detectAPIKey, "api-key", "", "Kibana API key (overrides config)")
	detectCmd.Flags().StringVar(&detectSpace, "space", "", "Kibana space (overrides config)")
	detectCmd.Flags().StringVar(&detectBaselineFile, "baseline", "", "Path to a baseline snapshot JSON file")
	detectCmd.Flags().BoolVar(&detectNoCLI, "no-cli", false, "Disable the structured CLI export path")

	RootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	conn := cfg.Kibana
	if detectEndpoint != "" {
		conn.Endpoint = detectEndpoint
	}
	if detectAPIKey != "" {
		conn.APIKey = detectAPIKey
	}
	if detectSpace != "" {
		conn.Space = detectSpace
	}

	baseline, err := loadBaseline(detectBaselineFile)
	if err != nil {
		return err
	}

	var structured reconcile.Source
	if cfg.Exporter.UseCLI && !detectNoCLI {
		structured = exporter.NewStructured(cfg.Exporter, conn, l)
	}
	raw := exporter.NewRaw(kibana.NewClient(conn), cfg.Exporter, l)

	report := reconcile.NewEngine(l).Detect(context.Background(), structured, raw, baseline)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// loadBaseline reads the snapshot array from a file. It accepts either a
// bare array or a full report object with a "current_rules" field, so a
// previous run's output can be fed back in directly.
func loadBaseline(path string) ([]reconcile.BaselineSnapshot, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var snapshots []reconcile.BaselineSnapshot
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&snapshots); err == nil {
		return snapshots, nil
	}

	var report struct {
		CurrentRules []reconcile.BaselineSnapshot `json:"current_rules"`
	}
	dec = json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}
	return report.CurrentRules, nil
}
