package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstflow/internal/csvexport"
	"gstflow/internal/domain"
	"gstflow/internal/service"
)

// ValidationHandler drives the master-data validation session lifecycle.
type ValidationHandler struct {
	validationService service.ValidationService
}

// NewValidationHandler creates a new ValidationHandler.
func NewValidationHandler(validationService service.ValidationService) *ValidationHandler {
	return &ValidationHandler{validationService: validationService}
}

type createSessionRequest struct {
	Rows    []domain.Row `json:"rows" binding:"required"`
	Columns []string     `json:"columns"`
}

// Create handles POST /api/v1/validations for callers that already hold
// parsed rows, bypassing the upload endpoint.
func (h *ValidationHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "rows field is required")
		return
	}

	session, err := h.validationService.CreateSession(c.Request.Context(), req.Rows, req.Columns)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gin.H{
		"session_id": session.ID,
		"status":     session.State,
		"row_count":  len(session.Rows),
	})
}

type runRequest struct {
	CredentialFields
}

// Run handles POST /api/v1/validations/:id/run.
func (h *ValidationHandler) Run(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}
	creds, err := req.Credentials()
	if err != nil {
		HandleError(c, err)
		return
	}

	report, err := h.validationService.Run(c.Request.Context(), id, creds)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Status handles GET /api/v1/validations/:id.
func (h *ValidationHandler) Status(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	report, err := h.validationService.Status(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Report handles GET /api/v1/validations/:id/report.
func (h *ValidationHandler) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	report, err := h.validationService.Report(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ExportReportCSV handles GET /api/v1/validations/:id/report.csv.
func (h *ValidationHandler) ExportReportCSV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	report, err := h.validationService.Status(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="validation-report-`+id.String()+`.csv"`)
	_, _ = c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err == nil {
		_ = w.WriteIssues("customer", report.Customers.Issues)
		_ = w.WriteIssues("item", report.Items.Issues)
	}
	w.Flush()
}

type correctionsRequest struct {
	Corrections []domain.Correction `json:"corrections" binding:"required"`
}

// ApplyCorrections handles POST /api/v1/validations/:id/corrections.
func (h *ValidationHandler) ApplyCorrections(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	var req correctionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "corrections field is required")
		return
	}

	applied, err := h.validationService.ApplyCorrections(c.Request.Context(), id, req.Corrections)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"applied": applied})
}

// Delete handles DELETE /api/v1/validations/:id.
func (h *ValidationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	if err := h.validationService.Cleanup(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
