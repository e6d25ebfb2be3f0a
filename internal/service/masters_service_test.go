package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstflow/internal/domain"
	"gstflow/internal/service"
	"gstflow/mocks"
)

func mastersClient() *mocks.MockERPClient {
	client := new(mocks.MockERPClient)
	client.On("BulkFetch", mock.Anything, domain.DoctypeCustomer, mock.Anything, 1000).
		Return([]map[string]any{
			{"name": "CUST-001", "customer_name": "Acme Traders", "disabled": float64(0)},
		}, nil).Maybe()
	client.On("BulkFetch", mock.Anything, domain.DoctypeItem, mock.Anything, 1000).
		Return([]map[string]any{
			{"item_code": "WIDGET-01", "item_name": "Widget", "standard_rate": float64(100)},
		}, nil).Maybe()
	return client
}

func TestSuggestCustomers_ServedFromCache(t *testing.T) {
	client := mastersClient()
	svc := service.NewMastersService(client)

	recs, err := svc.SuggestCustomers(context.Background(), "tra", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Acme Traders", recs[0].DisplayName)

	client.AssertNotCalled(t, "SearchByPattern", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSuggestCustomers_RemoteFallbackOnCacheMiss(t *testing.T) {
	client := mastersClient()
	client.On("SearchByPattern", mock.Anything, domain.DoctypeCustomer, "customer_name", "wayne", mock.Anything, 10).
		Return([]map[string]any{
			{"name": "CUST-777", "customer_name": "Wayne Enterprises"},
		}, nil).Once()
	svc := service.NewMastersService(client)

	recs, err := svc.SuggestCustomers(context.Background(), "wayne", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Wayne Enterprises", recs[0].DisplayName)

	client.AssertExpectations(t)
}

func TestSuggestItems_EmptyPartialSkipsRemote(t *testing.T) {
	client := mastersClient()
	svc := service.NewMastersService(client)

	recs, err := svc.SuggestItems(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)

	client.AssertNotCalled(t, "SearchByPattern", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckItemRate_ThroughService(t *testing.T) {
	client := mastersClient()
	svc := service.NewMastersService(client)

	check, err := svc.CheckItemRate(context.Background(), "WIDGET-01", 150)
	require.NoError(t, err)
	assert.True(t, check.Warning)
	assert.Equal(t, "Rate variance 50.0% from standard rate ₹100", check.Message)

	ok, err := svc.CheckItemRate(context.Background(), "WIDGET-01", 105)
	require.NoError(t, err)
	assert.True(t, ok.Valid)
}
