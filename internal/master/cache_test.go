package master_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstflow/internal/domain"
	"gstflow/internal/master"
	"gstflow/mocks"
)

func customerFixture() []map[string]any {
	return []map[string]any{
		{"name": "CUST-001", "customer_name": "Acme Traders", "gstin": "27AAPFU0939F1ZV", "disabled": float64(0)},
		{"name": "CUST-002", "customer_name": "Globex LLC", "disabled": float64(1)},
		{"name": "CUST-003", "customer_name": "Initech Solutions", "disabled": float64(0)},
	}
}

func newCustomerCache(t *testing.T) (*master.Cache, *mocks.MockERPClient) {
	t.Helper()
	client := new(mocks.MockERPClient)
	client.On("BulkFetch", mock.Anything, domain.DoctypeCustomer, mock.Anything, 1000).
		Return(customerFixture(), nil).Once()
	return master.NewCache(client, master.CustomerKind()), client
}

func TestCache_LoadsOnce(t *testing.T) {
	cache, client := newCustomerCache(t)
	ctx := context.Background()

	_, err := cache.ValidateBatch(ctx, []string{"Acme Traders"})
	require.NoError(t, err)
	_, err = cache.ValidateBatch(ctx, []string{"Acme Traders"})
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "BulkFetch", 1)
}

func TestCache_EmptyBatchStillLoads(t *testing.T) {
	cache, client := newCustomerCache(t)

	results, err := cache.ValidateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	client.AssertNumberOfCalls(t, "BulkFetch", 1)
}

func TestCache_LoadFailurePropagates(t *testing.T) {
	client := new(mocks.MockERPClient)
	client.On("BulkFetch", mock.Anything, domain.DoctypeCustomer, mock.Anything, 1000).
		Return(nil, errors.New("connection refused"))
	cache := master.NewCache(client, master.CustomerKind())

	_, err := cache.ValidateBatch(context.Background(), []string{"Acme Traders"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidateSingle_ExactHitPasses(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	for _, value := range []string{"Acme Traders", "CUST-001", "acme traders", " Acme Traders "} {
		res := cache.ValidateSingle(value)
		assert.Equal(t, domain.CheckPassed, res.Status, value)
		assert.Equal(t, "Customer found and active", res.Message, value)
	}
}

func TestValidateSingle_Empty(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	res := cache.ValidateSingle("   ")
	assert.Equal(t, domain.CheckFailed, res.Status)
	assert.Equal(t, "Customer name is empty", res.Message)
}

func TestValidateSingle_DisabledWarns(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	res := cache.ValidateSingle("Globex LLC")
	assert.Equal(t, domain.CheckWarning, res.Status)
	assert.Equal(t, "Customer is disabled in ERP", res.Message)
}

func TestValidateSingle_FuzzySuggestion(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	res := cache.ValidateSingle("Acme Trader")
	assert.Equal(t, domain.CheckWarning, res.Status)
	assert.Equal(t, "Customer not found exactly, similar customer available", res.Message)
	assert.Equal(t, "Acme Traders", res.Suggestion)
}

func TestValidateSingle_UnknownWithGSTIN(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	res := cache.ValidateSingle("Wayne Enterprises 24AAPFU0939F1ZV")
	assert.Equal(t, domain.CheckFailed, res.Status)
	assert.Equal(t, "Customer not found. GSTIN format: GSTIN format is valid", res.Message)
	assert.Equal(t, "Create new customer with this GSTIN", res.Suggestion)
}

func TestValidateSingle_DuplicateGSTINAdvisory(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	res := cache.ValidateSingle("Wayne Enterprises 27AAPFU0939F1ZV")
	assert.Equal(t, domain.CheckFailed, res.Status)
	assert.Equal(t, "Customer not found. GSTIN format: GSTIN already exists for customer: Acme Traders", res.Message)
}

func TestValidateSingle_UnknownWithoutGSTIN(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	res := cache.ValidateSingle("Wayne Enterprises")
	assert.Equal(t, domain.CheckFailed, res.Status)
	assert.Equal(t, "Customer not found in ERP", res.Message)
	assert.Equal(t, "Create new customer", res.Suggestion)
}

func TestValidateSingle_ItemVariantTemplateWarns(t *testing.T) {
	client := new(mocks.MockERPClient)
	client.On("BulkFetch", mock.Anything, domain.DoctypeItem, mock.Anything, 1000).
		Return([]map[string]any{
			{"item_code": "TSHIRT", "item_name": "T-Shirt", "has_variants": float64(1)},
			{"item_code": "WIDGET-01", "item_name": "Widget", "has_variants": float64(0)},
		}, nil)
	cache := master.NewCache(client, master.ItemKind())
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	res := cache.ValidateSingle("TSHIRT")
	assert.Equal(t, domain.CheckWarning, res.Status)
	assert.Equal(t, "Item is a template with variants", res.Message)

	assert.Equal(t, domain.CheckPassed, cache.ValidateSingle("WIDGET-01").Status)
}

func TestSuggest(t *testing.T) {
	cache, _ := newCustomerCache(t)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	recs := cache.Suggest("tra", 10)
	require.Len(t, recs, 1)
	assert.Equal(t, "Acme Traders", recs[0].DisplayName)

	assert.Empty(t, cache.Suggest("", 10))
	assert.Len(t, cache.Suggest("c", 2), 2)
}

func TestCheckRate(t *testing.T) {
	client := new(mocks.MockERPClient)
	client.On("BulkFetch", mock.Anything, domain.DoctypeItem, mock.Anything, 1000).
		Return([]map[string]any{
			{"item_code": "WIDGET-01", "item_name": "Widget", "standard_rate": float64(100)},
			{"item_code": "GADGET-01", "item_name": "Gadget"},
		}, nil).Once()
	cache := master.NewCache(client, master.ItemKind())
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	within := cache.CheckRate("WIDGET-01", 110)
	assert.True(t, within.Valid)
	assert.Equal(t, "Rate within acceptable range", within.Message)

	// Boundary: exactly 20% variance still passes.
	assert.True(t, cache.CheckRate("WIDGET-01", 120).Valid)

	over := cache.CheckRate("WIDGET-01", 150)
	assert.False(t, over.Valid)
	assert.True(t, over.Warning)
	assert.Equal(t, "Rate variance 50.0% from standard rate ₹100", over.Message)
	assert.Equal(t, float64(100), over.StandardRate)
	assert.Equal(t, float64(150), over.CurrentRate)

	under := cache.CheckRate("widget-01", 50)
	assert.True(t, under.Warning)

	noStandard := cache.CheckRate("GADGET-01", 999)
	assert.True(t, noStandard.Valid)
	assert.Equal(t, "No standard rate set", noStandard.Message)

	unknown := cache.CheckRate("DOOHICKEY", 10)
	assert.True(t, unknown.Valid)
	assert.Equal(t, "Item not found for rate validation", unknown.Message)

	none := cache.CheckRate("", 10)
	assert.True(t, none.Valid)
	assert.Equal(t, "No rate validation needed", none.Message)
}

func TestUOMCache_Check(t *testing.T) {
	client := new(mocks.MockERPClient)
	client.On("BulkFetch", mock.Anything, domain.DoctypeUOM, []string{"uom_name", "enabled"}, 500).
		Return([]map[string]any{
			{"uom_name": "Nos", "enabled": float64(1)},
			{"uom_name": "Kg", "enabled": float64(1)},
			{"uom_name": "Box", "enabled": float64(0)},
		}, nil).Once()
	cache := master.NewUOMCache(client)
	require.NoError(t, cache.EnsureLoaded(context.Background()))

	ok := cache.Check("Nos")
	assert.True(t, ok.Valid)
	assert.Equal(t, "UOM found and active", ok.Message)

	alias := cache.Check("pcs")
	assert.True(t, alias.Valid)
	assert.Equal(t, "UOM standardized", alias.Message)
	assert.Equal(t, "Nos", alias.Suggestion)

	disabled := cache.Check("Box")
	assert.False(t, disabled.Valid)
	assert.Equal(t, "UOM is disabled in ERP", disabled.Message)

	missing := cache.Check("Bundle")
	assert.False(t, missing.Valid)
	assert.Equal(t, "UOM not found in ERP", missing.Message)
	assert.Equal(t, "Nos", missing.Suggestion)

	empty := cache.Check("")
	assert.False(t, empty.Valid)
	assert.Equal(t, "UOM is empty", empty.Message)
}
