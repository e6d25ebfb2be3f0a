package invoice

import (
	"encoding/json"
	"fmt"
	"math"

	"gstflow/internal/domain"
	"gstflow/internal/gst"
)

// checkTolerance bounds acceptable drift when recomputing tax amounts from
// the serialized detail maps. Per-stage rounding legitimately moves amounts
// by a paisa or two.
const checkTolerance = 0.05

// PrecheckIssue is a single local finding on a built invoice.
type PrecheckIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Precheck inspects an invoice for structural problems that would fail at
// the ERP anyway. Findings are advisory; submission is never blocked on them.
func Precheck(inv *domain.Invoice) []PrecheckIssue {
	var issues []PrecheckIssue
	add := func(field, format string, args ...any) {
		issues = append(issues, PrecheckIssue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if inv.Customer == "" {
		add("customer", "customer is empty")
	}
	if inv.PostingDate == "" {
		add("posting_date", "posting date is empty")
	}
	if len(inv.Items) == 0 {
		add("items", "invoice has no items")
	}
	for i, it := range inv.Items {
		if it.ItemCode == "" && it.ItemName == "" {
			add(fmt.Sprintf("items[%d]", i), "item has neither code nor name")
		}
		if it.Qty <= 0 {
			add(fmt.Sprintf("items[%d].qty", i), "quantity must be positive, got %v", it.Qty)
		}
		if it.Rate < 0 {
			add(fmt.Sprintf("items[%d].rate", i), "rate must not be negative, got %v", it.Rate)
		}
		if it.GSTHSNCode != "" && !gst.ValidHSN(it.GSTHSNCode) {
			add(fmt.Sprintf("items[%d].gst_hsn_code", i), "HSN code must be 4, 6 or 8 digits, got %q", it.GSTHSNCode)
		}
	}

	switch inv.GSTCategory {
	case domain.GSTRegistered:
		if check := gst.InspectGSTIN(inv.GSTIN); !check.Valid {
			add("gstin", "registered customer needs a valid GSTIN: %s", check.Message)
		}
		if inv.PlaceOfSupply == "" {
			add("place_of_supply", "place of supply is required for domestic supplies")
		}
	case domain.GSTUnregistered:
		if inv.PlaceOfSupply == "" {
			add("place_of_supply", "place of supply is required for domestic supplies")
		}
	}

	issues = append(issues, checkTaxMath(inv)...)
	return issues
}

// checkTaxMath recomputes each tax line's per-item amounts from its detail
// map and flags lines whose amounts drift beyond tolerance.
func checkTaxMath(inv *domain.Invoice) []PrecheckIssue {
	taxable := make(map[string]float64, len(inv.Items))
	for _, it := range inv.Items {
		key := it.ItemCode
		if key == "" {
			key = it.ItemName
		}
		taxable[key] += round2(it.Qty * it.Rate)
	}

	var issues []PrecheckIssue
	for i, tax := range inv.Taxes {
		if tax.ItemWiseTaxDetail == "" {
			continue
		}
		var detail map[string][2]float64
		if err := json.Unmarshal([]byte(tax.ItemWiseTaxDetail), &detail); err != nil {
			issues = append(issues, PrecheckIssue{
				Field:   fmt.Sprintf("taxes[%d].item_wise_tax_detail", i),
				Message: "detail map is not valid JSON",
			})
			continue
		}
		for key, pair := range detail {
			expected := round2(taxable[key] * pair[0] / 100)
			if math.Abs(pair[1]-expected) > checkTolerance {
				issues = append(issues, PrecheckIssue{
					Field:   fmt.Sprintf("taxes[%d].item_wise_tax_detail", i),
					Message: fmt.Sprintf("amount for %q is %.2f, expected %.2f at %v%%", key, pair[1], expected, pair[0]),
				})
			}
		}
	}
	return issues
}
