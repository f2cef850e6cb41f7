package reconcile

import (
	"context"

	"rule-sync/core/rule"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine drives one reconciliation run: export, merge, fingerprint,
// classify. It holds no state between runs.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Detect reconciles the current rule population against the baseline and
// returns the full change report. The structured source may be nil when the
// structured path is disabled. Source failures never abort the run; they
// surface in Report.Errors.
func (e *Engine) Detect(ctx context.Context, structured, raw Source, baseline []BaselineSnapshot) *Report {
	report := &Report{
		Changes:      []ChangeRecord{},
		CurrentRules: []RuleState{},
		Errors:       []string{},
	}

	var (
		structuredRules []rule.Rule
		structuredErrs  []string
		rawRules        []rule.Rule
		rawErrs         []string
	)

	// Both sources are independent; fetch them concurrently so the run is
	// bounded by the slower of the two.
	g, gctx := errgroup.WithContext(ctx)
	if structured != nil {
		g.Go(func() error {
			structuredRules, structuredErrs = structured.Export(gctx)
			return nil
		})
	}
	g.Go(func() error {
		rawRules, rawErrs = raw.Export(gctx)
		return nil
	})
	_ = g.Wait()

	report.Errors = append(report.Errors, structuredErrs...)
	// The raw source is a fallback; its errors only matter when the
	// structured path produced nothing.
	if len(structuredRules) == 0 {
		report.Errors = append(report.Errors, rawErrs...)
	}

	merged, notes := Merge(structuredRules, rawRules)
	report.Errors = append(report.Errors, notes...)

	e.log.Debug("merged rule population",
		zap.Int("structured", len(structuredRules)),
		zap.Int("raw", len(rawRules)),
		zap.Int("merged", len(merged)))

	// Fingerprint and serialize every merged rule. A serialization failure
	// is isolated to its rule; the rule still participates in diffing.
	currentByID := make(map[string]RuleState, len(merged))
	for _, r := range merged {
		id := r.ID()
		if id == "" {
			continue
		}

		var tomlContent *string
		if doc, err := rule.ToTOML(r); err != nil {
			report.Errors = append(report.Errors, "TOML conversion failed for "+id+": "+err.Error())
		} else {
			tomlContent = &doc
		}

		state := RuleState{
			RuleID:      id,
			RuleName:    r.Name(),
			RuleHash:    rule.Fingerprint(r),
			RuleContent: r,
			TOMLContent: tomlContent,
			Enabled:     r.Enabled(),
			Severity:    r.Severity(),
			Tags:        r.GetSlice("tags"),
			Exceptions:  r.ExceptionRefs(),
		}
		currentByID[id] = state
		report.CurrentRules = append(report.CurrentRules, state)
	}

	baselineByID := make(map[string]BaselineSnapshot, len(baseline))
	for _, snap := range baseline {
		if snap.RuleID != "" {
			baselineByID[snap.RuleID] = snap
		}
	}

	// New and modified rules. Equal fingerprints emit nothing.
	for _, state := range report.CurrentRules {
		snap, known := baselineByID[state.RuleID]
		switch {
		case !known:
			kinds := []ChangeKind{ChangeNewRule}
			report.Changes = append(report.Changes, ChangeRecord{
				RuleID:        state.RuleID,
				RuleName:      state.RuleName,
				ChangeTypes:   kinds,
				DiffSummary:   Summarize(kinds, state.RuleName, nil, state.RuleContent),
				PreviousState: nil,
				CurrentState:  state.RuleContent,
				CurrentHash:   state.RuleHash,
				TOMLContent:   state.TOMLContent,
			})
		case snap.RuleHash != state.RuleHash:
			kinds := Classify(snap.RuleContent, state.RuleContent)
			report.Changes = append(report.Changes, ChangeRecord{
				RuleID:        state.RuleID,
				RuleName:      state.RuleName,
				ChangeTypes:   kinds,
				DiffSummary:   Summarize(kinds, state.RuleName, snap.RuleContent, state.RuleContent),
				PreviousState: snap.RuleContent,
				CurrentState:  state.RuleContent,
				CurrentHash:   state.RuleHash,
				TOMLContent:   state.TOMLContent,
			})
		}
	}

	// Deleted rules.
	for _, snap := range baseline {
		if snap.RuleID == "" {
			continue
		}
		if _, present := currentByID[snap.RuleID]; present {
			continue
		}
		name := snap.RuleName
		if name == "" {
			name = snap.RuleID
		}
		kinds := []ChangeKind{ChangeDeletedRule}
		report.Changes = append(report.Changes, ChangeRecord{
			RuleID:        snap.RuleID,
			RuleName:      name,
			ChangeTypes:   kinds,
			DiffSummary:   Summarize(kinds, name, snap.RuleContent, nil),
			PreviousState: snap.RuleContent,
			CurrentState:  nil,
			TOMLContent:   nil,
		})
	}

	e.log.Info("reconciliation complete",
		zap.Int("changes", len(report.Changes)),
		zap.Int("current_rules", len(report.CurrentRules)),
		zap.Int("errors", len(report.Errors)))

	return report
}
