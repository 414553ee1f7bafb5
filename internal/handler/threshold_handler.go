package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docflow/internal/service"
)

// ThresholdHandler serves the routing threshold endpoints.
type ThresholdHandler struct {
	thresholdService service.ThresholdService
}

// NewThresholdHandler creates a new ThresholdHandler.
func NewThresholdHandler(thresholdService service.ThresholdService) *ThresholdHandler {
	return &ThresholdHandler{thresholdService: thresholdService}
}

// Get handles GET /api/v1/thresholds.
func (h *ThresholdHandler) Get(c *gin.Context) {
	t, err := h.thresholdService.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, t)
}

// Update handles PUT /api/v1/thresholds. Admin only; every accepted change
// lands in the audit log.
func (h *ThresholdHandler) Update(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.ThresholdInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	t, err := h.thresholdService.Update(c.Request.Context(), input, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, t)
}

// AuditLog handles GET /api/v1/thresholds/audit. Admin only.
func (h *ThresholdHandler) AuditLog(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := h.thresholdService.AuditLog(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}
