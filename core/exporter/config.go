package exporter

// Config holds settings for the structured CLI export path.
type Config struct {
	// UseCLI toggles the structured export path. When false only the raw
	// API export runs.
	UseCLI bool `mapstructure:"use_cli" default:"true"`
	// Command is the interpreter the rule toolkit runs under.
	Command string `mapstructure:"command" default:"python3"`
	// Module is the toolkit module invoked with "-m".
	Module string `mapstructure:"module" default:"detection_rules"`
	// TimeoutSeconds bounds one CLI export run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
	// ItemConcurrency bounds the exception-item fan-out of the raw export.
	ItemConcurrency int `mapstructure:"item_concurrency" default:"4"`
}
