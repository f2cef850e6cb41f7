package reconcile

import (
	"context"
	"errors"
	"testing"

	"rule-sync/core/kibana"
	"rule-sync/core/kibana/mocks"
	"rule-sync/core/rule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRevertRule_UpdateSucceeds(t *testing.T) {
	store := new(mocks.Client)
	store.On("UpdateRule", mock.Anything, mock.Anything).Return(nil)

	target := rule.Rule{
		"rule_id":  "r-1",
		"name":     "Suspicious Login",
		"query":    "Q1",
		"revision": 4,
		"id":       "internal-uuid",
	}

	result := RevertRule(context.Background(), store, target)
	assert.True(t, result.Success)
	assert.Equal(t, "Rule r-1 reverted successfully", result.Message)

	// Internal and audit fields never reach the write path.
	sent := store.Calls[0].Arguments.Get(1).(rule.Rule)
	assert.NotContains(t, sent, "revision")
	assert.NotContains(t, sent, "id")
	assert.Equal(t, "Q1", sent.Query())
	store.AssertNotCalled(t, "CreateRule", mock.Anything, mock.Anything)
}

func TestRevertRule_RecreatesOnNotFound(t *testing.T) {
	store := new(mocks.Client)
	store.On("UpdateRule", mock.Anything, mock.Anything).Return(kibana.ErrNotFound)
	store.On("CreateRule", mock.Anything, mock.Anything).Return(nil)

	result := RevertRule(context.Background(), store, rule.Rule{"rule_id": "r-1"})
	assert.True(t, result.Success)
	assert.Equal(t, "Rule r-1 recreated successfully", result.Message)
	store.AssertExpectations(t)
}

func TestRevertRule_ReportsFailureAsData(t *testing.T) {
	store := new(mocks.Client)
	store.On("UpdateRule", mock.Anything, mock.Anything).Return(errors.New("HTTP error 403"))

	result := RevertRule(context.Background(), store, rule.Rule{"rule_id": "r-1"})
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Revert failed")
	assert.Contains(t, result.Message, "HTTP error 403")
}

func TestRevertRule_CreateFailureAfterNotFound(t *testing.T) {
	store := new(mocks.Client)
	store.On("UpdateRule", mock.Anything, mock.Anything).Return(kibana.ErrNotFound)
	store.On("CreateRule", mock.Anything, mock.Anything).Return(errors.New("HTTP error 409"))

	result := RevertRule(context.Background(), store, rule.Rule{"rule_id": "r-1"})
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "HTTP error 409")
}

func item(id, name string, extra map[string]any) map[string]any {
	m := map[string]any{"item_id": id, "name": name, "namespace_type": "single"}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func TestRevertExceptionItems_Idempotent(t *testing.T) {
	store := new(mocks.Client)
	items := []map[string]any{item("i1", "Allow host", nil)}

	result := RevertExceptionItems(context.Background(), store, items, items)
	assert.True(t, result.Success)
	assert.Equal(t, "No changes to revert", result.Message)
	assert.Empty(t, result.Results)
	assert.Empty(t, result.Errors)
	store.AssertNotCalled(t, "CreateExceptionItem", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "DeleteExceptionItem", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "UpdateExceptionItem", mock.Anything, mock.Anything)
}

func TestRevertExceptionItems_VolatileChurnIsNotAChange(t *testing.T) {
	store := new(mocks.Client)
	previous := []map[string]any{item("i1", "Allow host", map[string]any{
		"_version":   "v1",
		"updated_at": "2026-08-01T00:00:00Z",
	})}
	current := []map[string]any{item("i1", "Allow host", map[string]any{
		"_version":   "v9",
		"updated_at": "2026-08-31T00:00:00Z",
	})}

	result := RevertExceptionItems(context.Background(), store, previous, current)
	assert.True(t, result.Success)
	assert.Equal(t, "No changes to revert", result.Message)
	store.AssertNotCalled(t, "UpdateExceptionItem", mock.Anything, mock.Anything)
}

func TestRevertExceptionItems_Partition(t *testing.T) {
	store := new(mocks.Client)
	store.On("CreateExceptionItem", mock.Anything, mock.Anything).Return(nil)
	store.On("DeleteExceptionItem", mock.Anything, "i-added", "single").Return(nil)
	store.On("UpdateExceptionItem", mock.Anything, mock.Anything).Return(nil)

	previous := []map[string]any{
		item("i-removed", "Removed item", nil),
		item("i-kept", "Kept item", map[string]any{"comment": "old"}),
	}
	current := []map[string]any{
		item("i-added", "Added item", nil),
		item("i-kept", "Kept item", map[string]any{"comment": "new"}),
	}

	result := RevertExceptionItems(context.Background(), store, previous, current)
	assert.True(t, result.Success)
	assert.Equal(t, []string{
		"Recreated: Removed item",
		"Deleted: Added item",
		"Reverted: Kept item",
	}, result.Results)
	assert.Empty(t, result.Errors)

	// The update writes the previous content back.
	for _, call := range store.Calls {
		if call.Method == "UpdateExceptionItem" {
			payload := call.Arguments.Get(1).(map[string]any)
			assert.Equal(t, "old", payload["comment"])
		}
	}
	store.AssertExpectations(t)
}

func TestRevertExceptionItems_PartialFailure(t *testing.T) {
	store := new(mocks.Client)
	store.On("CreateExceptionItem", mock.Anything, mock.Anything).Return(errors.New("HTTP error 500"))
	store.On("DeleteExceptionItem", mock.Anything, "i-added", "single").Return(nil)

	previous := []map[string]any{item("i-removed", "Removed item", nil)}
	current := []map[string]any{item("i-added", "Added item", nil)}

	result := RevertExceptionItems(context.Background(), store, previous, current)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to recreate Removed item")
	// Other operations still ran.
	assert.Equal(t, []string{"Deleted: Added item"}, result.Results)
	store.AssertExpectations(t)
}
