package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/service"
)

// VocabularyHandler serves the per-format term vocabulary endpoints.
type VocabularyHandler struct {
	vocabService service.VocabularyService
}

// NewVocabularyHandler creates a new VocabularyHandler.
func NewVocabularyHandler(vocabService service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabService: vocabService}
}

// ListTerms handles GET /api/v1/formats/:id/terms?offset=0&limit=20.
func (h *VocabularyHandler) ListTerms(c *gin.Context) {
	formatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid format id")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	terms, total, err := h.vocabService.ListTerms(c.Request.Context(), formatID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, terms, PagMeta{Total: total, Offset: offset, Limit: limit})
}
