package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/service"
)

// DocumentHandler serves document processing and result endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Process handles POST /api/v1/documents/process: run the decision pipeline
// on one extracted document and return the mapped record plus routing.
func (h *DocumentHandler) Process(c *gin.Context) {
	var input service.ProcessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	out, err := h.documentService.Process(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// GetResult handles GET /api/v1/documents/:id/result.
func (h *DocumentHandler) GetResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}

	rec, err := h.documentService.GetResult(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// ListResults handles GET /api/v1/documents/results?offset=0&limit=20.
func (h *DocumentHandler) ListResults(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recs, total, err := h.documentService.ListResults(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// AttachScan handles POST /api/v1/documents/:id/scan: store the original
// scanned document for reviewer display.
func (h *DocumentHandler) AttachScan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "missing file upload")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.documentService.AttachScan(c.Request.Context(), id, contentType, file); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"document_id": id})
}

// ScanURL handles GET /api/v1/documents/:id/scan-url: presigned GET for the
// stored scan.
func (h *DocumentHandler) ScanURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}

	url, err := h.documentService.ScanURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}
