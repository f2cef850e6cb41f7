package cmd

import (
	"fmt"
	"os"

	"rule-sync/core/rule"

	"github.com/spf13/cobra"
)

var exportHashOnly bool

// exportCmd converts a rule file to TOML and prints it with its fingerprint.
var exportCmd = &cobra.Command{
	Use:   "export <rule-file>",
	Short: "Convert a rule file to TOML and print its fingerprint",
	Long: `Reads a rule document (JSON or TOML, chosen by extension), renders it
in the TOML export layout and prints it together with the rule fingerprint.

Examples:
  rule-sync export rule.json
  rule-sync export rule.toml --hash-only`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportHashOnly, "hash-only", false, "Print only the fingerprint")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rule file: %w", err)
	}

	r, err := rule.Parse(content, "", path)
	if err != nil {
		return fmt.Errorf("failed to parse rule file: %w", err)
	}

	hash := rule.Fingerprint(r)
	if exportHashOnly {
		fmt.Println(hash)
		return nil
	}

	doc, err := rule.ToTOML(r)
	if err != nil {
		return fmt.Errorf("failed to render TOML: %w", err)
	}
	fmt.Println(doc)
	fmt.Println("# hash:", hash)
	return nil
}
