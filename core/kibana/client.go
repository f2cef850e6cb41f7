package kibana

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rule-sync/core/rule"

	"github.com/goccy/go-json"
)

// ErrNotFound is returned when the remote reports the target rule or
// exception item does not exist. The revert planner relies on it to switch
// from update to create.
var ErrNotFound = errors.New("kibana: not found")

// Client is the surface of the detection-engine API consumed by the
// exporters and the revert planner.
type Client interface {
	// FindRules pages through the rule listing until all rules are retrieved.
	FindRules(ctx context.Context) ([]rule.Rule, error)
	// FindExceptionLists enumerates all exception lists in the space.
	FindExceptionLists(ctx context.Context) ([]map[string]any, error)
	// FindExceptionItems enumerates the items of one exception list.
	FindExceptionItems(ctx context.Context, listID, namespaceType string) ([]map[string]any, error)

	UpdateRule(ctx context.Context, r rule.Rule) error
	CreateRule(ctx context.Context, r rule.Rule) error

	CreateExceptionItem(ctx context.Context, item map[string]any) error
	UpdateExceptionItem(ctx context.Context, item map[string]any) error
	DeleteExceptionItem(ctx context.Context, itemID, namespaceType string) error
}

// HTTPClient implements Client against a live Kibana instance.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewClient creates an API client from the given configuration.
func NewClient(cfg Config) *HTTPClient {
	base := strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Space != "" && cfg.Space != "default" {
		base += "/s/" + cfg.Space
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10000
	}

	var transport http.RoundTripper
	if cfg.InsecureSkipVerify {
		transport = &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	}

	return &HTTPClient{
		baseURL:  base,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type findEnvelope struct {
	Data  []rule.Rule `json:"data"`
	Total int         `json:"total"`
}

type findMapEnvelope struct {
	Data  []map[string]any `json:"data"`
	Total int              `json:"total"`
}

// FindRules retrieves every rule in the space, sorted by name, following
// pagination until the reported total is reached.
func (c *HTTPClient) FindRules(ctx context.Context) ([]rule.Rule, error) {
	var rules []rule.Rule
	page := 1
	for {
		q := url.Values{
			"per_page":   {strconv.Itoa(c.pageSize)},
			"page":       {strconv.Itoa(page)},
			"sort_field": {"name"},
			"sort_order": {"asc"},
		}
		var envelope findEnvelope
		if err := c.do(ctx, http.MethodGet, "/api/detection_engine/rules/_find", q, nil, &envelope); err != nil {
			return nil, err
		}
		rules = append(rules, envelope.Data...)
		if len(rules) >= envelope.Total || len(envelope.Data) == 0 {
			return rules, nil
		}
		page++
	}
}

// FindExceptionLists enumerates the exception lists of the space.
func (c *HTTPClient) FindExceptionLists(ctx context.Context) ([]map[string]any, error) {
	q := url.Values{
		"per_page": {strconv.Itoa(c.pageSize)},
		"page":     {"1"},
	}
	var envelope findMapEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/exception_lists/_find", q, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// FindExceptionItems enumerates the items of the given exception list.
func (c *HTTPClient) FindExceptionItems(ctx context.Context, listID, namespaceType string) ([]map[string]any, error) {
	if namespaceType == "" {
		namespaceType = "single"
	}
	q := url.Values{
		"list_id":        {listID},
		"namespace_type": {namespaceType},
		"per_page":       {strconv.Itoa(c.pageSize)},
		"page":           {"1"},
	}
	var envelope findMapEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/exception_lists/items/_find", q, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateRule replaces an existing rule, addressed by its rule_id.
func (c *HTTPClient) UpdateRule(ctx context.Context, r rule.Rule) error {
	return c.do(ctx, http.MethodPut, "/api/detection_engine/rules", nil, r, nil)
}

// CreateRule creates a rule.
func (c *HTTPClient) CreateRule(ctx context.Context, r rule.Rule) error {
	return c.do(ctx, http.MethodPost, "/api/detection_engine/rules", nil, r, nil)
}

// CreateExceptionItem creates an exception list item.
func (c *HTTPClient) CreateExceptionItem(ctx context.Context, item map[string]any) error {
	return c.do(ctx, http.MethodPost, "/api/exception_lists/items", nil, item, nil)
}

// UpdateExceptionItem replaces an exception list item, addressed by item_id.
func (c *HTTPClient) UpdateExceptionItem(ctx context.Context, item map[string]any) error {
	return c.do(ctx, http.MethodPut, "/api/exception_lists/items", nil, item, nil)
}

// DeleteExceptionItem deletes an exception list item by item_id.
func (c *HTTPClient) DeleteExceptionItem(ctx context.Context, itemID, namespaceType string) error {
	if namespaceType == "" {
		namespaceType = "single"
	}
	q := url.Values{
		"item_id":        {itemID},
		"namespace_type": {namespaceType},
	}
	return c.do(ctx, http.MethodDelete, "/api/exception_lists/items", q, nil, nil)
}

// do performs one API call. Responses are decoded with UseNumber so numeric
// rule fields keep their literal form for fingerprinting.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	req.Header.Set("kbn-xsrf", "true")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(snippet))
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
