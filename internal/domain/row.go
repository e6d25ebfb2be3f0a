package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one spreadsheet line, mapping column name to a scalar cell value.
// Cells arrive as strings from file uploads and as strings or numbers from
// JSON payloads.
type Row map[string]any

// Column alias candidates, in lookup order. Uploaded sheets are inconsistent
// about header naming, so every consumer probes the same ordered lists.
var (
	CustomerColumns  = []string{"Customer", "Customer Name"}
	ItemColumns      = []string{"Item Code", "Item"}
	InvoiceNoColumns = []string{"Invoice No", "InvoiceNo"}
)

// First returns the first non-empty value among the candidate columns,
// trimmed. Missing columns and blank cells are skipped.
func (r Row) First(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(cellString(v))
		if s != "" {
			return s
		}
	}
	return ""
}

// FloatOr parses the first non-empty candidate cell as a float, falling back
// to def when no candidate parses. Dirty spreadsheets must not fail the whole
// invoice over one bad number.
func (r Row) FloatOr(def float64, keys ...string) float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
		s := strings.TrimSpace(cellString(v))
		if s == "" {
			continue
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return def
}

// Has reports whether the column exists on this row, even if its cell is empty.
func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func cellString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
