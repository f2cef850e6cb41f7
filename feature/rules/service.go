package rules

import (
	"context"

	"rule-sync/core/exporter"
	"rule-sync/core/kibana"
	"rule-sync/core/reconcile"
	"rule-sync/core/rule"

	"go.uber.org/zap"
)

// Service implements the rule reconciliation operations behind the HTTP
// surface. Connection settings come per request and fall back to the
// configured defaults.
type Service struct {
	defaults kibana.Config
	expCfg   exporter.Config
	logger   *zap.Logger
	engine   *reconcile.Engine

	// Factories, swapped out in tests.
	newClient     func(kibana.Config) kibana.Client
	newStructured func(exporter.Config, kibana.Config, *zap.Logger) reconcile.Source
}

// NewService creates a new rules service.
func NewService(defaults kibana.Config, expCfg exporter.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		defaults: defaults,
		expCfg:   expCfg,
		logger:   logger,
		engine:   reconcile.NewEngine(logger),
		newClient: func(cfg kibana.Config) kibana.Client {
			return kibana.NewClient(cfg)
		},
		newStructured: func(cfg exporter.Config, conn kibana.Config, log *zap.Logger) reconcile.Source {
			return exporter.NewStructured(cfg, conn, log)
		},
	}
}

// connFor merges per-request connection settings over the configured
// defaults.
func (s *Service) connFor(endpoint, apiKey, space string) kibana.Config {
	conn := s.defaults
	if endpoint != "" {
		conn.Endpoint = endpoint
	}
	if apiKey != "" {
		conn.APIKey = apiKey
	}
	if space != "" {
		conn.Space = space
	}
	if conn.Space == "" {
		conn.Space = "default"
	}
	return conn
}

// DetectChanges runs one full reconciliation pass against the baseline.
func (s *Service) DetectChanges(ctx context.Context, req DetectChangesRequest) *reconcile.Report {
	conn := s.connFor(req.KibanaURL, req.APIKey, req.Space)

	var structured reconcile.Source
	useCLI := s.expCfg.UseCLI
	if req.UseCLI != nil {
		useCLI = *req.UseCLI
	}
	if useCLI {
		structured = s.newStructured(s.expCfg, conn, s.logger)
	}
	raw := exporter.NewRaw(s.newClient(conn), s.expCfg, s.logger)

	return s.engine.Detect(ctx, structured, raw, req.BaselineSnapshots)
}

// ExportTOML renders one rule as a TOML document and returns it with the
// rule's fingerprint.
func (s *Service) ExportTOML(r rule.Rule) (string, string, error) {
	doc, err := rule.ToTOML(r)
	if err != nil {
		return "", "", err
	}
	return doc, rule.Fingerprint(r), nil
}

// ComputeHash returns the stable fingerprint of one rule.
func (s *Service) ComputeHash(r rule.Rule) string {
	return rule.Fingerprint(r)
}

// RevertRule restores a rule to the supplied state.
func (s *Service) RevertRule(ctx context.Context, req RevertRuleRequest) reconcile.RevertResult {
	conn := s.connFor(req.KibanaURL, req.APIKey, req.Space)
	return reconcile.RevertRule(ctx, s.newClient(conn), req.RuleContent)
}

// RevertExceptionItems restores an exception-item collection to its
// previous state.
func (s *Service) RevertExceptionItems(ctx context.Context, req RevertExceptionItemsRequest) reconcile.ItemRevertResult {
	conn := s.connFor(req.KibanaURL, req.APIKey, req.Space)
	return reconcile.RevertExceptionItems(ctx, s.newClient(conn), req.PreviousItems, req.CurrentItems)
}

// ParseRuleContent decodes a JSON or TOML rule payload into the normalized
// rule mapping.
func (s *Service) ParseRuleContent(content, format, filename string) (rule.Rule, error) {
	return rule.Parse([]byte(content), format, filename)
}
