package mocks

import (
	"context"

	"rule-sync/core/rule"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of kibana.Client
type Client struct {
	mock.Mock
}

func (m *Client) FindRules(ctx context.Context) ([]rule.Rule, error) {
	args := m.Called(ctx)
	if rules, ok := args.Get(0).([]rule.Rule); ok {
		return rules, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FindExceptionLists(ctx context.Context) ([]map[string]any, error) {
	args := m.Called(ctx)
	if lists, ok := args.Get(0).([]map[string]any); ok {
		return lists, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FindExceptionItems(ctx context.Context, listID, namespaceType string) ([]map[string]any, error) {
	args := m.Called(ctx, listID, namespaceType)
	if items, ok := args.Get(0).([]map[string]any); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UpdateRule(ctx context.Context, r rule.Rule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *Client) CreateRule(ctx context.Context, r rule.Rule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *Client) CreateExceptionItem(ctx context.Context, item map[string]any) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *Client) UpdateExceptionItem(ctx context.Context, item map[string]any) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *Client) DeleteExceptionItem(ctx context.Context, itemID, namespaceType string) error {
	args := m.Called(ctx, itemID, namespaceType)
	return args.Error(0)
}
