package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstflow/internal/domain"
	"gstflow/internal/port"
)

// MockERPClient is a mock implementation of port.ERPClient.
type MockERPClient struct {
	mock.Mock
}

func (m *MockERPClient) VerifyResource(ctx context.Context, doctype domain.Doctype, name string) port.VerifyResult {
	args := m.Called(ctx, doctype, name)
	return args.Get(0).(port.VerifyResult)
}

func (m *MockERPClient) BulkFetch(ctx context.Context, doctype domain.Doctype, fields []string, limit int) ([]map[string]any, error) {
	args := m.Called(ctx, doctype, fields, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockERPClient) SearchByPattern(ctx context.Context, doctype domain.Doctype, field, pattern string, fields []string, limit int) ([]map[string]any, error) {
	args := m.Called(ctx, doctype, field, pattern, fields, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockERPClient) PostInvoice(ctx context.Context, endpoint string, inv *domain.Invoice) port.SubmitResult {
	args := m.Called(ctx, endpoint, inv)
	return args.Get(0).(port.SubmitResult)
}
