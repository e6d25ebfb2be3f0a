// Package erp implements the REST client for the remote accounting system:
// exact-key master lookups, bulk list fetches with field projection, and
// invoice document submission.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gstflow/internal/domain"
	"gstflow/internal/logger"
	"gstflow/internal/port"
)

const (
	// DefaultLookupTimeout bounds single master lookups and bulk fetches.
	DefaultLookupTimeout = 15 * time.Second
	// DefaultSubmitTimeout bounds invoice submission, which the remote side
	// processes synchronously.
	DefaultSubmitTimeout = 30 * time.Second
)

// Client talks to one remote ERP instance with one API token.
type Client struct {
	baseURL      string
	apiToken     string
	lookupClient *http.Client
	submitClient *http.Client
	log          zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeouts overrides the lookup and submit timeouts.
func WithTimeouts(lookup, submit time.Duration) Option {
	return func(c *Client) {
		c.lookupClient.Timeout = lookup
		c.submitClient.Timeout = submit
	}
}

// NewClient creates a client for the given base URL and "key:secret" token.
func NewClient(baseURL, apiToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiToken:     apiToken,
		lookupClient: &http.Client{Timeout: DefaultLookupTimeout},
		submitClient: &http.Client{Timeout: DefaultSubmitTimeout},
		log:          logger.WithComponent("erp"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "token "+c.apiToken)

	resp, err := c.lookupClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// VerifyResource checks a named master by exact key. Empty names fail fast
// without a network round-trip.
func (c *Client) VerifyResource(ctx context.Context, doctype domain.Doctype, name string) port.VerifyResult {
	if strings.TrimSpace(name) == "" {
		return port.VerifyResult{Detail: fmt.Sprintf("%s is empty", doctype)}
	}

	path := fmt.Sprintf("api/resource/%s/%s", url.PathEscape(string(doctype)), url.PathEscape(name))
	status, body, err := c.get(ctx, path)
	if err != nil {
		return port.VerifyResult{Detail: fmt.Sprintf("%s verification failed: %v", doctype, err)}
	}
	if status != http.StatusOK {
		return port.VerifyResult{Detail: fmt.Sprintf("%s '%s' not found in ERP (status %d)", doctype, name, status)}
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		// A 200 with an unparseable body still proves existence.
		return port.VerifyResult{Found: true}
	}
	return port.VerifyResult{Found: true, Record: envelope.Data}
}

// BulkFetch lists records of a doctype with field projection and a cap.
func (c *Client) BulkFetch(ctx context.Context, doctype domain.Doctype, fields []string, limit int) ([]map[string]any, error) {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	q := url.Values{}
	q.Set("fields", string(fieldsJSON))
	q.Set("limit_page_length", strconv.Itoa(limit))

	path := fmt.Sprintf("api/resource/%s?%s", url.PathEscape(string(doctype)), q.Encode())
	status, body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s list: %w", doctype, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s list: status %d", doctype, status)
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding %s list: %w", doctype, err)
	}
	c.log.Debug().Str("doctype", string(doctype)).Int("count", len(envelope.Data)).Msg("bulk fetch completed")
	return envelope.Data, nil
}

// SearchByPattern lists records whose field contains pattern, via the remote
// side's like-filter. Used as the remote fallback behind cached autocomplete.
func (c *Client) SearchByPattern(ctx context.Context, doctype domain.Doctype, field, pattern string, fields []string, limit int) ([]map[string]any, error) {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	filters := [][]string{{string(doctype), field, "like", "%" + pattern + "%"}}
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("encoding filters: %w", err)
	}
	q := url.Values{}
	q.Set("fields", string(fieldsJSON))
	q.Set("filters", string(filtersJSON))
	q.Set("limit_page_length", strconv.Itoa(limit))

	path := fmt.Sprintf("api/resource/%s?%s", url.PathEscape(string(doctype)), q.Encode())
	status, body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", doctype, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s search failed: status %d", doctype, status)
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding %s search: %w", doctype, err)
	}
	return envelope.Data, nil
}

// PostInvoice submits the invoice document as JSON to the given endpoint.
func (c *Client) PostInvoice(ctx context.Context, endpoint string, inv *domain.Invoice) port.SubmitResult {
	payload, err := json.Marshal(inv)
	if err != nil {
		return port.SubmitResult{TransportErr: fmt.Sprintf("marshaling invoice: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return port.SubmitResult{TransportErr: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "token "+c.apiToken)

	resp, err := c.submitClient.Do(req)
	if err != nil {
		return port.SubmitResult{TransportErr: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.SubmitResult{TransportErr: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return port.SubmitResult{StatusCode: resp.StatusCode, ResponseText: string(body)}
	}

	result := port.SubmitResult{OK: true, StatusCode: resp.StatusCode, ResponseText: string(body)}
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		result.Response = envelope.Data
		if name, ok := envelope.Data["name"].(string); ok {
			result.DocumentName = name
		}
	}
	c.log.Info().Int("status", resp.StatusCode).Str("document", result.DocumentName).Msg("invoice posted")
	return result
}
