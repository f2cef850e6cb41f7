package exporter

import (
	"context"
	"fmt"
	"sync"

	"rule-sync/core/kibana"
	"rule-sync/core/rule"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Raw exports rules straight from the detection-engine API. It is the
// fallback when the CLI path is unavailable and the only source of the
// internal storage identifier and the flattened exception items.
type Raw struct {
	client kibana.Client
	cfg    Config
	log    *zap.Logger
}

// NewRaw creates an API-backed export source.
func NewRaw(client kibana.Client, cfg Config, log *zap.Logger) *Raw {
	if log == nil {
		log = zap.NewNop()
	}
	// errgroup.SetLimit(0) would block every Go call forever.
	if cfg.ItemConcurrency < 1 {
		cfg.ItemConcurrency = 4
	}
	return &Raw{client: client, cfg: cfg, log: log}
}

func (r *Raw) Name() string { return "raw" }

// Export lists every rule, then enriches each with its exception lists and
// the flattened, volatile-stripped exception items. Exception enrichment is
// best effort: when list enumeration fails the rules still come back, just
// without exception detail.
func (r *Raw) Export(ctx context.Context) ([]rule.Rule, []string) {
	var errs []string

	rules, err := r.client.FindRules(ctx)
	if err != nil {
		errs = append(errs, fmt.Sprintf("API export error: %v", err))
	}

	lists, err := r.client.FindExceptionLists(ctx)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Exception list fetch error: %v", err))
		return rules, errs
	}

	listsByID := make(map[string]map[string]any, len(lists))
	for _, list := range lists {
		if id, _ := list["list_id"].(string); id != "" {
			listsByID[id] = list
		}
	}

	itemErrs := r.enrich(ctx, rules, listsByID)
	errs = append(errs, itemErrs...)

	r.log.Debug("raw export finished",
		zap.Int("rules", len(rules)),
		zap.Int("exception_lists", len(listsByID)),
		zap.Int("errors", len(errs)))
	return rules, errs
}

// enrich fetches the items of every known exception list with a bounded
// fan-out, then attaches the full list definitions and the per-rule item
// collections.
func (r *Raw) enrich(ctx context.Context, rules []rule.Rule, listsByID map[string]map[string]any) []string {
	var (
		mu          sync.Mutex
		errs        []string
		itemsByList = make(map[string][]map[string]any, len(listsByID))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.ItemConcurrency)
	for listID, list := range listsByID {
		listID := listID
		namespace, _ := list["namespace_type"].(string)
		if namespace == "" {
			namespace = "single"
		}
		g.Go(func() error {
			items, err := r.client.FindExceptionItems(gctx, listID, namespace)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Sprintf("Failed to fetch items for list %s: %v", listID, err))
				return nil
			}
			cleaned := make([]map[string]any, 0, len(items))
			for _, item := range items {
				cleaned = append(cleaned, rule.StripItemVolatile(item))
			}
			itemsByList[listID] = cleaned
			return nil
		})
	}
	_ = g.Wait()

	for _, current := range rules {
		refs := current.ExceptionRefs()
		var enriched []any
		var ruleItems []any
		for _, ref := range refs {
			refMap, ok := ref.(map[string]any)
			if !ok {
				enriched = append(enriched, ref)
				continue
			}
			listID, _ := refMap["list_id"].(string)
			if full, known := listsByID[listID]; known {
				enriched = append(enriched, full)
			} else {
				enriched = append(enriched, ref)
			}
			for _, item := range itemsByList[listID] {
				ruleItems = append(ruleItems, item)
			}
		}
		if len(enriched) > 0 {
			current[rule.FieldEnrichedExceptions] = enriched
		}
		// Deterministic item order so the collection hashes stably.
		current[rule.FieldExceptionItems] = rule.SortByCanonical(ruleItems)
	}

	return errs
}
