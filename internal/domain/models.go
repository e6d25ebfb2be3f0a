package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is a sales invoice document in the shape the remote ERP accepts.
// GSTIN and PlaceOfSupply are serialized only when determinable.
type Invoice struct {
	Doctype       string        `json:"doctype"`
	Customer      string        `json:"customer"`
	Company       string        `json:"company"`
	PostingDate   string        `json:"posting_date"`
	DueDate       string        `json:"due_date"`
	CustomerPONo  string        `json:"customer_po_no"`
	Items         []InvoiceItem `json:"items"`
	Taxes         []TaxLine     `json:"taxes"`
	PaymentTerms  string        `json:"payment_terms_template,omitempty"`
	GSTCategory   GSTCategory   `json:"gst_category"`
	GSTIN         string        `json:"gstin,omitempty"`
	PlaceOfSupply string        `json:"place_of_supply,omitempty"`
	Remarks       string        `json:"remarks"`
}

// InvoiceItem is a single item line. Order-linkage fields (sales_order,
// purchase_order) are deliberately absent so the generated invoice stands
// independent of upstream order records.
type InvoiceItem struct {
	ItemCode      string  `json:"item_code"`
	ItemName      string  `json:"item_name"`
	Description   string  `json:"description"`
	Qty           float64 `json:"qty"`
	Rate          float64 `json:"rate"`
	UOM           string  `json:"uom"`
	GSTHSNCode    string  `json:"gst_hsn_code"`
	Warehouse     string  `json:"warehouse,omitempty"`
	IncomeAccount string  `json:"income_account"`
	GSTRate       float64 `json:"gst_rate"`
}

// TaxLine is one tax charge row. ItemWiseTaxDetail is a JSON-encoded map of
// item key to [rate, amount], consumed downstream for per-item reconciliation.
type TaxLine struct {
	ChargeType        string  `json:"charge_type"`
	AccountHead       string  `json:"account_head"`
	Description       string  `json:"description"`
	Rate              float64 `json:"rate"`
	ItemWiseTaxDetail string  `json:"item_wise_tax_detail"`
}

// MasterRecord is the cached projection of a remote master entity. One shape
// serves every kind; kind-specific fields are simply zero for the others.
type MasterRecord struct {
	Name         string  `json:"name"`
	DisplayName  string  `json:"display_name"`
	GSTIN        string  `json:"gstin,omitempty"`
	HSNCode      string  `json:"hsn_code,omitempty"`
	Territory    string  `json:"territory,omitempty"`
	StockUOM     string  `json:"stock_uom,omitempty"`
	StandardRate float64 `json:"standard_rate,omitempty"`
	Disabled     bool    `json:"disabled"`
	HasVariants  bool    `json:"has_variants,omitempty"`
}

// CheckResult is the verdict for one validated master value.
type CheckResult struct {
	Value      string      `json:"value"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// ValidationIssue is a warning- or error-level finding recorded on a phase.
type ValidationIssue struct {
	Type       string `json:"type"` // "warning" or "error"
	Value      string `json:"value"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PhaseResult aggregates one validation sub-phase (customers or items).
type PhaseResult struct {
	State    PhaseState        `json:"status"`
	Passed   int               `json:"passed"`
	Warnings int               `json:"warnings"`
	Failed   int               `json:"failed"`
	Issues   []ValidationIssue `json:"errors"`
}

// Correction is a suggested master-value substitution surfaced to the caller.
// It is never applied automatically.
type Correction struct {
	Kind      CorrectionKind `json:"type"`
	Original  string         `json:"original"`
	Suggested string         `json:"suggested"`
}

// ValidationSummary is the batch-level verdict over both phases.
type ValidationSummary struct {
	CanProceed      bool         `json:"can_proceed"`
	CriticalErrors  int          `json:"critical_errors"`
	Warnings        int          `json:"warnings"`
	AutoCorrections []Correction `json:"auto_corrections"`
}

// ValidationSession holds one uploaded row batch and its validation state.
// Sessions live only in process memory; there is no persistence guarantee.
type ValidationSession struct {
	ID               uuid.UUID         `json:"session_id"`
	CreatedAt        time.Time         `json:"created_at"`
	State            SessionState      `json:"status"`
	TotalRecords     int               `json:"total_records"`
	ProcessedRecords int               `json:"processed_records"`
	Rows             []Row             `json:"rows"`
	Columns          []string          `json:"columns"`
	Customers        PhaseResult       `json:"customer_validation"`
	Items            PhaseResult       `json:"item_validation"`
	Summary          ValidationSummary `json:"validation_summary"`
}

// NewValidationSession creates an initialized session over a row batch.
func NewValidationSession(rows []Row, columns []string) *ValidationSession {
	return &ValidationSession{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		State:        SessionInitialized,
		TotalRecords: len(rows),
		Rows:         rows,
		Columns:      columns,
		Customers:    PhaseResult{State: PhasePending, Issues: []ValidationIssue{}},
		Items:        PhaseResult{State: PhasePending, Issues: []ValidationIssue{}},
		Summary:      ValidationSummary{AutoCorrections: []Correction{}},
	}
}
