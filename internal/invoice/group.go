package invoice

import "gstflow/internal/domain"

const (
	// SingleGroupKey labels the implicit group when no invoice number column
	// exists in the upload.
	SingleGroupKey = "__SINGLE__"
	// noInvoiceKey collects rows whose invoice number cell is blank when the
	// column itself exists.
	noInvoiceKey = "__NO_INV__"
)

// Group is an ordered run of rows sharing one invoice identifier.
type Group struct {
	Key  string
	Rows []domain.Row
}

// GroupRows splits rows into invoice groups by the invoice number column,
// preserving first-seen group order. When no row carries the column at all,
// the entire set is one group.
func GroupRows(rows []domain.Row) []Group {
	hasColumn := false
	for _, r := range rows {
		for _, col := range domain.InvoiceNoColumns {
			if r.Has(col) {
				hasColumn = true
				break
			}
		}
		if hasColumn {
			break
		}
	}
	if !hasColumn {
		return []Group{{Key: SingleGroupKey, Rows: rows}}
	}

	index := make(map[string]int)
	var groups []Group
	for _, r := range rows {
		key := r.First(domain.InvoiceNoColumns...)
		if key == "" {
			key = noInvoiceKey
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}
