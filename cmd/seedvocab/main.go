// Command seedvocab converts a vocabulary Excel workbook into a SQL seed
// file for the extracted_terms table. The workbook's first sheet carries one
// row per term: A=format UUID, B=term text, C=optional frequency.
// Usage: go run ./cmd/seedvocab [workbook.xlsx]
// Output: db/seeds/vocabulary.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"docflow/internal/term"
)

const batchSize = 500

type vocabEntry struct {
	formatID  uuid.UUID
	term      string
	frequency int64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "vocabulary.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/vocabulary.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, skipped, err := parseSheet(f)
	if err != nil {
		return fmt.Errorf("parse sheet: %w", err)
	}
	log.Printf("parsed %d terms (%d rows skipped)", len(entries), skipped)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Vocabulary seed data generated from Excel.",
		fmt.Sprintf("-- %d terms in batches of %d.", len(entries), batchSize),
		"-- Run: make seed-vocab",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d terms (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseSheet reads the first sheet. Header row is detected and skipped when
// column A does not parse as a UUID. Terms are normalized the same way the
// recorder normalizes them at runtime, and duplicates within a format merge
// their frequencies.
func parseSheet(f *excelize.File) ([]vocabEntry, int, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, err
	}

	index := make(map[string]int)
	var entries []vocabEntry
	skipped := 0

	for _, row := range rows {
		formatID, err := uuid.Parse(strings.TrimSpace(cellVal(row, 0)))
		if err != nil {
			skipped++
			continue
		}

		normalized := term.Normalize(cellVal(row, 1))
		if normalized == "" {
			skipped++
			continue
		}

		freq := int64(1)
		if raw := strings.TrimSpace(cellVal(row, 2)); raw != "" {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
				freq = n
			}
		}

		key := formatID.String() + "|" + normalized
		if i, ok := index[key]; ok {
			entries[i].frequency += freq
			continue
		}
		index[key] = len(entries)
		entries = append(entries, vocabEntry{formatID: formatID, term: normalized, frequency: freq})
	}
	return entries, skipped, nil
}

func writeBatch(out *os.File, batch []vocabEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO extracted_terms (id, format_id, term, frequency, first_seen, last_seen) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', %d, NOW(), NOW())",
			e.formatID, escapeSQL(e.term), e.frequency)
	}

	b.WriteString("\nON CONFLICT (format_id, term) DO UPDATE SET frequency = extracted_terms.frequency + EXCLUDED.frequency, last_seen = NOW();\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
