package rules

import (
	"rule-sync/core/reconcile"
	"rule-sync/core/rule"
)

// DetectChangesRequest is the payload for a reconciliation run.
type DetectChangesRequest struct {
	// KibanaURL overrides the configured endpoint.
	KibanaURL string `json:"kibana_url" validate:"omitempty,url"`
	// APIKey overrides the configured API key.
	APIKey string `json:"api_key"`
	// Space overrides the configured Kibana space.
	Space string `json:"space"`
	// UseCLI toggles the structured export path for this run.
	UseCLI *bool `json:"use_cli"`
	// BaselineSnapshots is the prior state to diff against. Empty means
	// every current rule is new.
	BaselineSnapshots []reconcile.BaselineSnapshot `json:"baseline_snapshots"`
}

// ExportTOMLRequest carries one rule to serialize.
type ExportTOMLRequest struct {
	Rule rule.Rule `json:"rule" validate:"required"`
}

// ExportTOMLResponse carries the rendered document and the rule fingerprint.
type ExportTOMLResponse struct {
	TOMLContent string `json:"toml_content"`
	RuleHash    string `json:"rule_hash"`
}

// ComputeHashRequest carries one rule to fingerprint.
type ComputeHashRequest struct {
	Rule rule.Rule `json:"rule" validate:"required"`
}

// ComputeHashResponse carries the fingerprint.
type ComputeHashResponse struct {
	RuleHash string `json:"rule_hash"`
}

// RevertRuleRequest asks for one rule to be restored to RuleContent.
type RevertRuleRequest struct {
	KibanaURL   string    `json:"kibana_url" validate:"omitempty,url"`
	APIKey      string    `json:"api_key"`
	Space       string    `json:"space"`
	RuleContent rule.Rule `json:"rule_content" validate:"required"`
}

// RevertExceptionItemsRequest asks for an exception-item collection to be
// restored from CurrentItems back to PreviousItems.
type RevertExceptionItemsRequest struct {
	KibanaURL     string           `json:"kibana_url" validate:"omitempty,url"`
	APIKey        string           `json:"api_key"`
	Space         string           `json:"space"`
	PreviousItems []map[string]any `json:"previous_items"`
	CurrentItems  []map[string]any `json:"current_items"`
}

// ParseRuleContentRequest carries a raw rule document.
type ParseRuleContentRequest struct {
	// Content is the document text.
	Content string `json:"content" validate:"required"`
	// Format is "json" or "toml"; empty means infer from Filename.
	Format string `json:"format" validate:"omitempty,oneof=json toml"`
	// Filename is an optional extension hint.
	Filename string `json:"filename"`
}

// ParseRuleContentResponse carries the normalized rule mapping.
type ParseRuleContentResponse struct {
	Rule rule.Rule `json:"rule"`
}
