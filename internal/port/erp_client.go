package port

import (
	"context"

	"gstflow/internal/domain"
)

// VerifyResult is the outcome of a single master existence lookup.
// When Found is false, Detail carries a human-readable reason (missing,
// remote status, or transport failure text).
type VerifyResult struct {
	Found  bool
	Record map[string]any
	Detail string
}

// SubmitResult is the outcome of posting an invoice document.
type SubmitResult struct {
	OK           bool
	DocumentName string
	Response     map[string]any
	StatusCode   int
	ResponseText string
	TransportErr string
}

// ERPClient abstracts the remote accounting system's REST surface.
type ERPClient interface {
	// VerifyResource checks a named master by exact key. An empty name is a
	// precondition failure and triggers no network call.
	VerifyResource(ctx context.Context, doctype domain.Doctype, name string) VerifyResult

	// BulkFetch lists records of a doctype with field projection and a
	// result-set cap. Never returns partial success.
	BulkFetch(ctx context.Context, doctype domain.Doctype, fields []string, limit int) ([]map[string]any, error)

	// SearchByPattern lists records whose field matches a substring pattern,
	// using the remote side's like-filter.
	SearchByPattern(ctx context.Context, doctype domain.Doctype, field, pattern string, fields []string, limit int) ([]map[string]any, error)

	// PostInvoice submits the invoice document to the given endpoint.
	PostInvoice(ctx context.Context, endpoint string, inv *domain.Invoice) SubmitResult
}

// Credentials are caller-suppliable remote access overrides.
type Credentials struct {
	APIToken string
	Endpoint string
}

// ERPClientFactory builds a client for a set of credentials. Empty fields
// fall back to configured defaults.
type ERPClientFactory func(creds Credentials) ERPClient
