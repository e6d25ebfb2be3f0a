package invoice_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstflow/internal/domain"
	"gstflow/internal/invoice"
)

func newBuilder() *invoice.Builder {
	return invoice.NewBuilder("Maharashtra", "Vibgyor Industries Private Limited", "VIPL")
}

func registeredRow(state string) domain.Row {
	return domain.Row{
		"Customer":       "Acme Traders",
		"GSTIN":          "27AAPFU0939F1ZV",
		"Customer State": state,
		"Country":        "India",
		"Item Code":      "WIDGET-01",
		"Qty":            "10",
		"Rate":           "100",
		"GST Rate (%)":   "18",
		"Posting Date":   "2026-08-15",
	}
}

func detailOf(t *testing.T, line domain.TaxLine) map[string][2]float64 {
	t.Helper()
	var detail map[string][2]float64
	require.NoError(t, json.Unmarshal([]byte(line.ItemWiseTaxDetail), &detail))
	return detail
}

func TestBuild_IntraStateSplitsCGSTSGST(t *testing.T) {
	inv, err := newBuilder().Build([]domain.Row{registeredRow("Maharashtra")})
	require.NoError(t, err)

	assert.Equal(t, "Sales Invoice", inv.Doctype)
	assert.Equal(t, domain.GSTRegistered, inv.GSTCategory)
	assert.Equal(t, "27AAPFU0939F1ZV", inv.GSTIN)
	assert.Equal(t, "27-Maharashtra", inv.PlaceOfSupply)

	require.Len(t, inv.Taxes, 2)
	cgst, sgst := inv.Taxes[0], inv.Taxes[1]
	assert.Equal(t, "Output Tax CGST - VIPL", cgst.AccountHead)
	assert.Equal(t, "Output Tax SGST - VIPL", sgst.AccountHead)
	assert.Equal(t, 9.0, cgst.Rate)
	assert.Equal(t, 9.0, sgst.Rate)

	// taxable 1000.00 at 9% each half
	assert.Equal(t, [2]float64{9, 90}, detailOf(t, cgst)["WIDGET-01"])
	assert.Equal(t, [2]float64{9, 90}, detailOf(t, sgst)["WIDGET-01"])
}

func TestBuild_InterStateSingleIGST(t *testing.T) {
	inv, err := newBuilder().Build([]domain.Row{registeredRow("Gujarat")})
	require.NoError(t, err)

	assert.Equal(t, "24-Gujarat", inv.PlaceOfSupply)
	require.Len(t, inv.Taxes, 1)
	igst := inv.Taxes[0]
	assert.Equal(t, "Output Tax IGST - VIPL", igst.AccountHead)
	assert.Equal(t, 18.0, igst.Rate)
	assert.Equal(t, [2]float64{18, 180}, detailOf(t, igst)["WIDGET-01"])
}

func TestBuild_HalvesSumCloseToFullRate(t *testing.T) {
	// Awkward taxable values may make the halves differ from the single
	// IGST amount by a paisa, never more.
	row := registeredRow("Maharashtra")
	row["Qty"] = "3"
	row["Rate"] = "33.37"
	intra, err := newBuilder().Build([]domain.Row{row})
	require.NoError(t, err)

	row = registeredRow("Gujarat")
	row["Qty"] = "3"
	row["Rate"] = "33.37"
	inter, err := newBuilder().Build([]domain.Row{row})
	require.NoError(t, err)

	half := detailOf(t, intra.Taxes[0])["WIDGET-01"][1] + detailOf(t, intra.Taxes[1])["WIDGET-01"][1]
	full := detailOf(t, inter.Taxes[0])["WIDGET-01"][1]
	assert.LessOrEqual(t, math.Abs(half-full), 0.01)
}

func TestBuild_OverseasCustomer(t *testing.T) {
	row := domain.Row{
		"Customer":     "Globex LLC",
		"Country":      "United States",
		"Item Code":    "WIDGET-01",
		"Qty":          "1",
		"Rate":         "500",
		"GST Rate (%)": "0",
	}
	inv, err := newBuilder().Build([]domain.Row{row})
	require.NoError(t, err)

	assert.Equal(t, domain.GSTOverseas, inv.GSTCategory)
	// Overseas place of supply carries the country string verbatim
	assert.Equal(t, "United States", inv.PlaceOfSupply)
	assert.Empty(t, inv.Taxes)
}

func TestBuild_UnregisteredWhenNoGSTIN(t *testing.T) {
	row := registeredRow("Maharashtra")
	delete(row, "GSTIN")
	inv, err := newBuilder().Build([]domain.Row{row})
	require.NoError(t, err)

	assert.Equal(t, domain.GSTUnregistered, inv.GSTCategory)
	assert.Empty(t, inv.GSTIN)
}

func TestBuild_Defaults(t *testing.T) {
	inv, err := newBuilder().Build([]domain.Row{{
		"Customer":  "Acme Traders",
		"Item Code": "WIDGET-01",
	}})
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	item := inv.Items[0]
	assert.Equal(t, 1.0, item.Qty)
	assert.Equal(t, 0.0, item.Rate)
	assert.Equal(t, "Nos", item.UOM)
	assert.Equal(t, "WIDGET-01", item.ItemName)
	assert.Equal(t, "WIDGET-01", item.Description)
	assert.Equal(t, "Sales - VIPL", item.IncomeAccount)

	assert.NotEmpty(t, inv.PostingDate)
	assert.Equal(t, inv.PostingDate, inv.DueDate)
	assert.Equal(t, "Vibgyor Industries Private Limited", inv.Company)
	assert.Equal(t, "Generated from Excel Uploader", inv.Remarks)
}

func TestBuild_MissingCustomer(t *testing.T) {
	_, err := newBuilder().Build([]domain.Row{{"Item Code": "WIDGET-01"}})
	assert.ErrorIs(t, err, domain.ErrMissingCustomer)
}

func TestBuildAll_GroupsByInvoiceNo(t *testing.T) {
	rows := []domain.Row{
		{"Invoice No": "INV-1", "Customer": "Acme Traders", "Item Code": "A", "Qty": "1", "Rate": "10"},
		{"Invoice No": "INV-1", "Customer": "Acme Traders", "Item Code": "B", "Qty": "2", "Rate": "20"},
		{"Invoice No": "INV-2", "Customer": "Globex LLC", "Item Code": "C", "Qty": "1", "Rate": "30"},
	}
	invoices, buildErrs, err := newBuilder().BuildAll(rows, "", "")
	require.NoError(t, err)
	assert.Empty(t, buildErrs)
	require.Len(t, invoices, 2)
	assert.Len(t, invoices["INV-1"].Items, 2)
	assert.Len(t, invoices["INV-2"].Items, 1)
}

func TestBuildAll_NoInvoiceColumnMakesSingleGroup(t *testing.T) {
	rows := []domain.Row{
		{"Customer": "Acme Traders", "Item Code": "A"},
		{"Customer": "Acme Traders", "Item Code": "B"},
	}
	invoices, _, err := newBuilder().BuildAll(rows, "", "")
	require.NoError(t, err)
	require.Contains(t, invoices, invoice.SingleGroupKey)
	assert.Len(t, invoices[invoice.SingleGroupKey].Items, 2)
}

func TestBuildAll_PartialFailureKeepsSiblings(t *testing.T) {
	rows := []domain.Row{
		{"Invoice No": "INV-1", "Customer": "Acme Traders", "Item Code": "A"},
		{"Invoice No": "INV-2", "Item Code": "B"},
	}
	invoices, buildErrs, err := newBuilder().BuildAll(rows, "", "")
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
	assert.Contains(t, buildErrs, "INV-2")
}

func TestBuildAll_AllFailed(t *testing.T) {
	rows := []domain.Row{
		{"Invoice No": "INV-1", "Item Code": "A"},
	}
	invoices, buildErrs, err := newBuilder().BuildAll(rows, "", "")
	assert.ErrorIs(t, err, domain.ErrAllInvoicesFailed)
	assert.Empty(t, invoices)
	assert.Len(t, buildErrs, 1)
}

func TestBuildAll_Overrides(t *testing.T) {
	rows := []domain.Row{{"Customer": "Acme Traders", "Item Code": "A"}}
	invoices, _, err := newBuilder().BuildAll(rows, "Other Co", "bulk import")
	require.NoError(t, err)
	inv := invoices[invoice.SingleGroupKey]
	assert.Equal(t, "Other Co", inv.Company)
	assert.Equal(t, "bulk import", inv.Remarks)
}

func TestPrecheck_CleanInvoicePasses(t *testing.T) {
	inv, err := newBuilder().Build([]domain.Row{registeredRow("Maharashtra")})
	require.NoError(t, err)
	assert.Empty(t, invoice.Precheck(inv))
}

func TestPrecheck_FlagsProblems(t *testing.T) {
	inv := &domain.Invoice{
		Doctype:     "Sales Invoice",
		GSTCategory: domain.GSTRegistered,
		Items: []domain.InvoiceItem{
			{ItemCode: "A", Qty: 0, Rate: -5, GSTHSNCode: "123"},
		},
	}
	issues := invoice.Precheck(inv)

	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}
	assert.Contains(t, fields, "customer")
	assert.Contains(t, fields, "posting_date")
	assert.Contains(t, fields, "items[0].qty")
	assert.Contains(t, fields, "items[0].rate")
	assert.Contains(t, fields, "items[0].gst_hsn_code")
	assert.Contains(t, fields, "gstin")
	assert.Contains(t, fields, "place_of_supply")
}

func TestPrecheck_FlagsTamperedTaxAmount(t *testing.T) {
	inv, err := newBuilder().Build([]domain.Row{registeredRow("Gujarat")})
	require.NoError(t, err)

	inv.Taxes[0].ItemWiseTaxDetail = `{"WIDGET-01":[18,500]}`
	issues := invoice.Precheck(inv)
	require.Len(t, issues, 1)
	assert.Equal(t, "taxes[0].item_wise_tax_detail", issues[0].Field)
}
