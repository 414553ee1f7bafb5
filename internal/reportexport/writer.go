package reportexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docflow/internal/domain"
	"docflow/internal/mapping"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row: identity, the canonical fields, then
// the scoring outcome.
var columns = buildColumns()

func buildColumns() []string {
	cols := []string{
		"Document ID",
		"Organization ID",
		"Format ID",
	}
	for _, field := range mapping.CanonicalFields {
		cols = append(cols, field)
	}
	cols = append(cols,
		"Unmapped Count",
		"Overall Confidence",
		"Scope Bonus",
		"Decision",
		"Explanation",
		"Processed At",
	)
	return cols
}

// Writer wraps csv.Writer for exporting processing results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResults converts a batch of processing results to CSV rows and writes them.
func (w *Writer) WriteResults(recs []domain.ProcessingResultRecord) error {
	for i := range recs {
		row := resultToRow(&recs[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func resultToRow(rec *domain.ProcessingResultRecord) []string {
	row := make([]string, len(columns))

	row[0] = rec.DocumentID.String()
	if rec.OrganizationID != nil {
		row[1] = rec.OrganizationID.String()
	}
	if rec.FormatID != nil {
		row[2] = rec.FormatID.String()
	}

	var mapped map[string]string
	if len(rec.MappedFields) > 0 {
		_ = json.Unmarshal(rec.MappedFields, &mapped)
	}
	for i, field := range mapping.CanonicalFields {
		row[3+i] = mapped[field]
	}

	unmappedCount := 0
	if len(rec.UnmappedFields) > 0 {
		var unmapped []string
		if err := json.Unmarshal(rec.UnmappedFields, &unmapped); err == nil {
			unmappedCount = len(unmapped)
		}
	}

	base := 3 + len(mapping.CanonicalFields)
	row[base] = strconv.Itoa(unmappedCount)
	row[base+1] = strconv.FormatFloat(rec.OverallConfidence, 'f', 4, 64)
	row[base+2] = strconv.FormatFloat(rec.ScopeBonus, 'f', 2, 64)
	row[base+3] = string(rec.Decision)
	row[base+4] = rec.Explanation
	row[base+5] = rec.CreatedAt.Format(time.RFC3339)

	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
