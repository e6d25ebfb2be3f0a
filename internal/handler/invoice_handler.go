package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstflow/internal/domain"
	"gstflow/internal/invoice"
	"gstflow/internal/service"
)

// InvoiceHandler builds invoices from rows and submits them to the ERP.
type InvoiceHandler struct {
	invoiceService    service.InvoiceService
	submissionService service.SubmissionService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, submissionService service.SubmissionService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:    invoiceService,
		submissionService: submissionService,
	}
}

type generateRequest struct {
	Rows    []domain.Row `json:"rows" binding:"required"`
	Company string       `json:"company"`
	Remarks string       `json:"remarks"`
}

// GenerateResponse pairs built invoices with per-group build failures and
// advisory structural findings.
type GenerateResponse struct {
	Invoices map[string]*domain.Invoice         `json:"invoices"`
	Errors   map[string]string                  `json:"errors,omitempty"`
	Warnings map[string][]invoice.PrecheckIssue `json:"warnings,omitempty"`
}

// Generate handles POST /api/v1/invoices/generate.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "rows field is required")
		return
	}

	invoices, buildErrs, err := h.invoiceService.Generate(c.Request.Context(), req.Rows, req.Company, req.Remarks)
	if err != nil {
		HandleError(c, err)
		return
	}

	var warnings map[string][]invoice.PrecheckIssue
	for key, inv := range invoices {
		if found := invoice.Precheck(inv); len(found) > 0 {
			if warnings == nil {
				warnings = make(map[string][]invoice.PrecheckIssue)
			}
			warnings[key] = found
		}
	}
	RespondOK(c, GenerateResponse{Invoices: invoices, Errors: buildErrs, Warnings: warnings})
}

type submitRequest struct {
	CredentialFields
	Invoices map[string]*domain.Invoice `json:"invoices" binding:"required"`
}

// Submit handles POST /api/v1/invoices/submit. Every invoice has its masters
// verified before posting; results are keyed the same way the request was.
func (h *InvoiceHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invoices field is required")
		return
	}
	if len(req.Invoices) == 0 {
		HandleError(c, domain.ErrNoInvoices)
		return
	}

	creds, err := req.Credentials()
	if err != nil {
		HandleError(c, err)
		return
	}

	results := h.submissionService.SubmitBatch(c.Request.Context(), creds, req.Invoices)

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	RespondOK(c, gin.H{
		"results":   results,
		"total":     len(results),
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}
