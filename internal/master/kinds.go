package master

import "gstflow/internal/domain"

// KindConfig parameterizes the generic master cache for one doctype: which
// fields to project, how aggressive fuzzy matching may be, and how raw
// records decode into the shared MasterRecord shape.
type KindConfig struct {
	Doctype       domain.Doctype
	Noun          string // "Customer", "Item", prefixes messages
	ValueTerm     string // "name" or "code", what the validated string is called
	Fields        []string
	SearchField   string // remote like-filter column for pattern search
	Limit         int
	Cutoff        float64
	TrackGSTIN    bool // maintain the GSTIN duplicate index (customers)
	CheckVariants bool // template-with-variants warning (items)
	Decode        func(map[string]any) domain.MasterRecord
}

// CustomerKind is the cache configuration for customer masters.
func CustomerKind() KindConfig {
	return KindConfig{
		Doctype:     domain.DoctypeCustomer,
		Noun:        "Customer",
		ValueTerm:   "name",
		Fields:      []string{"name", "customer_name", "gstin", "territory", "disabled"},
		SearchField: "customer_name",
		Limit:       1000,
		Cutoff:      0.6,
		TrackGSTIN:  true,
		Decode: func(raw map[string]any) domain.MasterRecord {
			return domain.MasterRecord{
				Name:        asString(raw, "name"),
				DisplayName: asString(raw, "customer_name"),
				GSTIN:       asString(raw, "gstin"),
				Territory:   asString(raw, "territory"),
				Disabled:    asBool(raw, "disabled"),
			}
		},
	}
}

// ItemKind is the cache configuration for item masters. Item codes tolerate
// less fuzz than free-text customer names, hence the higher cutoff.
func ItemKind() KindConfig {
	return KindConfig{
		Doctype:       domain.DoctypeItem,
		Noun:          "Item",
		ValueTerm:     "code",
		Fields:        []string{"item_code", "item_name", "gst_hsn_code", "standard_rate", "stock_uom", "disabled", "has_variants", "is_stock_item"},
		SearchField:   "item_code",
		Limit:         1000,
		Cutoff:        0.7,
		CheckVariants: true,
		Decode: func(raw map[string]any) domain.MasterRecord {
			return domain.MasterRecord{
				Name:         asString(raw, "item_code"),
				DisplayName:  asString(raw, "item_name"),
				HSNCode:      asString(raw, "gst_hsn_code"),
				StandardRate: asFloat(raw, "standard_rate"),
				StockUOM:     asString(raw, "stock_uom"),
				Disabled:     asBool(raw, "disabled"),
				HasVariants:  asBool(raw, "has_variants"),
			}
		},
	}
}

func asString(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

func asFloat(raw map[string]any, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// asBool treats the ERP's 0/1 integer flags and real booleans uniformly.
func asBool(raw map[string]any, key string) bool {
	switch v := raw[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}
