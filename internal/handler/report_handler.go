package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docflow/internal/reportexport"
	"docflow/internal/service"
)

// exportBatchSize is the page size used when streaming results to CSV.
const exportBatchSize = 100

// ReportHandler serves CSV exports of processing results.
type ReportHandler struct {
	documentService service.DocumentService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(documentService service.DocumentService) *ReportHandler {
	return &ReportHandler{documentService: documentService}
}

// ExportCSV handles GET /api/v1/reports/results.csv. Streams all processing
// results as a CSV download.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filename := reportexport.BuildFilename("processing_results")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if _, err := c.Writer.Write(reportexport.BOM); err != nil {
		return
	}

	w := reportexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}

	offset := 0
	for {
		recs, total, err := h.documentService.ListResults(c.Request.Context(), offset, exportBatchSize)
		if err != nil {
			// Headers are already out; abort the stream.
			c.Status(http.StatusInternalServerError)
			return
		}
		if err := w.WriteResults(recs); err != nil {
			return
		}
		offset += len(recs)
		if offset >= total || len(recs) == 0 {
			break
		}
	}
	w.Flush()
}
