// Package gst holds the Indian GST primitives shared by the invoice builder
// and the master validators: GSTIN and HSN format checks, the state-code
// table, and the intra-state supply test.
package gst

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// gstinSearch finds a GSTIN-shaped token anywhere in a string. People
	// sometimes paste the GSTIN alongside the customer name.
	gstinSearch = regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z]\d[A-Z0-9]{2}\b`)
	hsnPattern  = regexp.MustCompile(`^\d{4}$|^\d{6}$|^\d{8}$`)
)

// GSTINCheck is the outcome of a syntactic GSTIN inspection.
type GSTINCheck struct {
	Found   bool
	GSTIN   string
	Valid   bool
	Message string
}

// InspectGSTIN scans s for a GSTIN-shaped token and validates it
// syntactically: 15 characters, the standard pattern, and a state-code
// prefix in 01-37. The check is purely syntactic; registry existence is the
// remote system's concern.
func InspectGSTIN(s string) GSTINCheck {
	m := gstinSearch.FindString(strings.ToUpper(strings.TrimSpace(s)))
	if m == "" {
		return GSTINCheck{Message: "No GSTIN found"}
	}
	if len(m) != 15 {
		return GSTINCheck{Found: true, GSTIN: m, Message: "GSTIN must be 15 characters"}
	}
	code, err := strconv.Atoi(m[:2])
	if err != nil || code < 1 || code > 37 {
		return GSTINCheck{Found: true, GSTIN: m, Message: "Invalid state code in GSTIN"}
	}
	return GSTINCheck{Found: true, GSTIN: m, Valid: true, Message: "GSTIN format is valid"}
}

// ValidHSN reports whether code is a 4, 6, or 8 digit HSN code.
func ValidHSN(code string) bool {
	return hsnPattern.MatchString(strings.TrimSpace(code))
}
