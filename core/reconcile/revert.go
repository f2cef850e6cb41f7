package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"rule-sync/core/kibana"
	"rule-sync/core/rule"
)

// RevertResult reports the outcome of a single rule revert.
type RevertResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ItemRevertResult reports the outcome of an exception-item revert. Success
// is true only when no individual operation failed.
type ItemRevertResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Results []string `json:"results"`
	Errors  []string `json:"errors"`
}

// RevertRule restores a rule to the given target state. Internal and
// read-only fields are stripped, then the rule is updated by identity; when
// the rule no longer exists the target is recreated instead. Remote
// rejections are reported, never raised.
func RevertRule(ctx context.Context, store kibana.Client, target rule.Rule) RevertResult {
	payload := target.StripForWrite()
	id := payload.GetString("rule_id")

	err := store.UpdateRule(ctx, payload)
	if err == nil {
		return RevertResult{Success: true, Message: fmt.Sprintf("Rule %s reverted successfully", id)}
	}

	if errors.Is(err, kibana.ErrNotFound) {
		if err := store.CreateRule(ctx, payload); err != nil {
			return RevertResult{Success: false, Message: fmt.Sprintf("Revert failed: %v", err)}
		}
		return RevertResult{Success: true, Message: fmt.Sprintf("Rule %s recreated successfully", id)}
	}

	return RevertResult{Success: false, Message: fmt.Sprintf("Revert failed: %v", err)}
}

// RevertExceptionItems restores an exception-item collection to its
// previous state. Both collections are indexed by item_id: items only in
// previous are recreated, items only in current are deleted, and items in
// both whose stripped content differs are updated back to the previous
// content. Each operation's failure is isolated; the rest are still
// attempted.
func RevertExceptionItems(ctx context.Context, store kibana.Client, previous, current []map[string]any) ItemRevertResult {
	prevByID := indexItems(previous)
	currByID := indexItems(current)

	var results, errs []string

	// Removed items: recreate from the previous content.
	for _, itemID := range sortedIDs(prevByID) {
		if _, exists := currByID[itemID]; exists {
			continue
		}
		item := prevByID[itemID]
		if err := store.CreateExceptionItem(ctx, rule.StripItemVolatile(item)); err != nil {
			errs = append(errs, fmt.Sprintf("Failed to recreate %s: %v", itemName(item, itemID), err))
			continue
		}
		results = append(results, "Recreated: "+itemName(item, itemID))
	}

	// Added items: delete.
	for _, itemID := range sortedIDs(currByID) {
		if _, exists := prevByID[itemID]; exists {
			continue
		}
		item := currByID[itemID]
		namespace, _ := item["namespace_type"].(string)
		if err := store.DeleteExceptionItem(ctx, itemID, namespace); err != nil {
			errs = append(errs, fmt.Sprintf("Failed to delete %s: %v", itemName(item, itemID), err))
			continue
		}
		results = append(results, "Deleted: "+itemName(item, itemID))
	}

	// Modified items: update back to the previous content.
	for _, itemID := range sortedIDs(currByID) {
		prevItem, exists := prevByID[itemID]
		if !exists {
			continue
		}
		currItem := currByID[itemID]
		if itemsEqual(prevItem, currItem) {
			continue
		}
		if err := store.UpdateExceptionItem(ctx, rule.StripItemVolatile(prevItem)); err != nil {
			errs = append(errs, fmt.Sprintf("Failed to revert %s: %v", itemName(prevItem, itemID), err))
			continue
		}
		results = append(results, "Reverted: "+itemName(prevItem, itemID))
	}

	message := "No changes to revert"
	if len(results) > 0 {
		message = strings.Join(results, "; ")
	}
	if results == nil {
		results = []string{}
	}
	if errs == nil {
		errs = []string{}
	}

	return ItemRevertResult{
		Success: len(errs) == 0,
		Message: message,
		Results: results,
		Errors:  errs,
	}
}

// itemsEqual deep-compares two items order-insensitively after stripping
// volatile fields, so audit churn alone never triggers an update.
func itemsEqual(prev, curr map[string]any) bool {
	prevJSON := rule.CanonicalJSON(rule.StripItemVolatile(prev))
	currJSON := rule.CanonicalJSON(rule.StripItemVolatile(curr))
	return string(prevJSON) == string(currJSON)
}

func indexItems(items []map[string]any) map[string]map[string]any {
	byID := make(map[string]map[string]any, len(items))
	for _, item := range items {
		if id, _ := item["item_id"].(string); id != "" {
			byID[id] = item
		}
	}
	return byID
}

// sortedIDs keeps operation order deterministic for reporting.
func sortedIDs(items map[string]map[string]any) []string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func itemName(item map[string]any, fallback string) string {
	if name, _ := item["name"].(string); name != "" {
		return name
	}
	return fallback
}
