package invoice

import (
	"gstflow/internal/domain"
	"gstflow/internal/gst"
)

// Classification is the GST verdict for an invoice group, decided from the
// group's first row only. The whole group inherits it: mixed-state groups are
// the uploader's problem, not ours.
type Classification struct {
	Category      domain.GSTCategory
	GSTIN         string
	PlaceOfSupply string
}

// Classify decides GST category, GSTIN, and place of supply for a row.
//
// A non-India country wins outright: the invoice is Overseas, the GSTIN field
// is carried unvalidated, and place of supply is the raw country string. A
// non-empty GSTIN means Registered; otherwise Unregistered. In both domestic
// cases place of supply is the customer state mapped through the state-code
// table.
func Classify(first domain.Row) Classification {
	country := first.First("Country", "country")
	gstin := first.First("GSTIN", "gstin", "GST No")

	if country != "" && !gst.IsIndia(country) {
		return Classification{
			Category:      domain.GSTOverseas,
			GSTIN:         gstin,
			PlaceOfSupply: country,
		}
	}

	pos := gst.PlaceOfSupply(first.First("Customer State", "State"))
	if gstin != "" {
		return Classification{Category: domain.GSTRegistered, GSTIN: gstin, PlaceOfSupply: pos}
	}
	return Classification{Category: domain.GSTUnregistered, PlaceOfSupply: pos}
}
