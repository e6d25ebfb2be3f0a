package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gstflow/internal/service"
)

const defaultSuggestionLimit = 10

// MastersHandler serves master-data autocomplete and unit checks.
type MastersHandler struct {
	mastersService service.MastersService
}

// NewMastersHandler creates a new MastersHandler.
func NewMastersHandler(mastersService service.MastersService) *MastersHandler {
	return &MastersHandler{mastersService: mastersService}
}

// SuggestCustomers handles GET /api/v1/masters/customers/suggestions?q=...
func (h *MastersHandler) SuggestCustomers(c *gin.Context) {
	partial := c.Query("q")
	records, err := h.mastersService.SuggestCustomers(c.Request.Context(), partial, limitParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"suggestions": records})
}

// SuggestItems handles GET /api/v1/masters/items/suggestions?q=...
func (h *MastersHandler) SuggestItems(c *gin.Context) {
	partial := c.Query("q")
	records, err := h.mastersService.SuggestItems(c.Request.Context(), partial, limitParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"suggestions": records})
}

// CheckUOM handles GET /api/v1/masters/uoms/check?uom=...
func (h *MastersHandler) CheckUOM(c *gin.Context) {
	uom := c.Query("uom")
	if uom == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_UOM", "uom query parameter is required")
		return
	}

	check, err := h.mastersService.CheckUOM(c.Request.Context(), uom)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, check)
}

// CheckItemRate handles GET /api/v1/masters/items/rate-check?item=...&rate=...
func (h *MastersHandler) CheckItemRate(c *gin.Context) {
	item := c.Query("item")
	if item == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_ITEM", "item query parameter is required")
		return
	}
	rate, err := strconv.ParseFloat(c.Query("rate"), 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_RATE", "rate query parameter must be a number")
		return
	}

	check, err := h.mastersService.CheckItemRate(c.Request.Context(), item, rate)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, check)
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSuggestionLimit)))
	if err != nil || limit <= 0 {
		return defaultSuggestionLimit
	}
	return limit
}
