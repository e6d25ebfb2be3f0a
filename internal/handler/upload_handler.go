package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstflow/internal/domain"
	"gstflow/internal/service"
	"gstflow/internal/spreadsheet"
)

// UploadHandler accepts spreadsheet uploads and opens validation sessions
// over their rows.
type UploadHandler struct {
	validationService service.ValidationService
	uploadDir         string
	maxBytes          int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(validationService service.ValidationService, uploadDir string, maxFileSizeMB int64) *UploadHandler {
	return &UploadHandler{
		validationService: validationService,
		uploadDir:         uploadDir,
		maxBytes:          maxFileSizeMB * 1024 * 1024,
	}
}

// UploadResponse describes a freshly created validation session.
type UploadResponse struct {
	SessionID uuid.UUID    `json:"session_id"`
	Filename  string       `json:"filename"`
	RowCount  int          `json:"row_count"`
	Columns   []string     `json:"columns"`
	Rows      []domain.Row `json:"rows"`
}

// Upload handles POST /api/v1/uploads. The spreadsheet is parsed immediately
// and discarded; only the extracted rows live on in the session.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	_ = file.Close()

	if header.Size > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}
	if !spreadsheet.Allowed(header.Filename) {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	tmpPath := filepath.Join(h.uploadDir, uuid.New().String()+filepath.Ext(header.Filename))
	if err := c.SaveUploadedFile(header, tmpPath); err != nil {
		RespondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "could not store uploaded file")
		return
	}
	defer func() { _ = os.Remove(tmpPath) }()

	rows, columns, err := spreadsheet.Read(tmpPath)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "PARSE_FAILED", "could not parse spreadsheet: "+err.Error())
		return
	}

	session, err := h.validationService.CreateSession(c.Request.Context(), rows, columns)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, UploadResponse{
		SessionID: session.ID,
		Filename:  header.Filename,
		RowCount:  len(rows),
		Columns:   columns,
		Rows:      rows,
	})
}
