package gst

import "strings"

// stateCodes maps state names to the "code-name" composite the ERP prefers in
// place_of_supply. Unmapped states pass through as the raw name.
var stateCodes = map[string]string{
	"Maharashtra":    "27-Maharashtra",
	"Gujarat":        "24-Gujarat",
	"Karnataka":      "29-Karnataka",
	"Delhi":          "07-Delhi",
	"Tamil Nadu":     "33-Tamil Nadu",
	"West Bengal":    "19-West Bengal",
	"Andhra Pradesh": "37-Andhra Pradesh",
	"Telangana":      "36-Telangana",
}

// indiaDesignators are accepted spellings of India in the Country column.
var indiaDesignators = map[string]bool{
	"india":      true,
	"in":         true,
	"india (in)": true,
}

// PlaceOfSupply maps a state name to its "code-name" composite when known,
// else returns the trimmed raw state name.
func PlaceOfSupply(state string) string {
	s := strings.TrimSpace(state)
	if s == "" {
		return ""
	}
	if mapped, ok := stateCodes[s]; ok {
		return mapped
	}
	return s
}

// IsIndia reports whether country designates India.
func IsIndia(country string) bool {
	return indiaDesignators[strings.ToLower(strings.TrimSpace(country))]
}

// IntraState reports whether placeOfSupply falls inside homeState. The value
// may be a raw state name or a "code-name" composite, so a case-insensitive
// substring check runs first with a trimmed exact match as fallback. Known
// fragility: a composite containing an unrelated state whose name embeds the
// home state name also matches; kept as-is to preserve reference behavior.
func IntraState(placeOfSupply, homeState string) bool {
	if placeOfSupply == "" || homeState == "" {
		return false
	}
	if strings.Contains(strings.ToLower(placeOfSupply), strings.ToLower(homeState)) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(placeOfSupply), strings.TrimSpace(homeState))
}
