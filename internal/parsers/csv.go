package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvTable is a header-indexed view over parsed CSV content.
type csvTable struct {
	headerIndex map[string]int
	rows        [][]string
}

// readCSV parses delimited content with a header row. Column names are
// lowercased and trimmed so lookups tolerate export quirks. Unreadable rows
// are collected as row errors rather than failing the batch.
func readCSV(raw []byte) (*csvTable, []string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int, len(header))
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	table := &csvTable{headerIndex: headerIndex}

	var rowErrors []string
	lineNum := 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: %v", lineNum, err))
			continue
		}
		table.rows = append(table.rows, record)
	}

	return table, rowErrors, nil
}

func (t *csvTable) hasColumn(name string) bool {
	_, ok := t.headerIndex[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// get returns the trimmed value of a column for a record, or "" when the
// column is absent or the record is short.
func (t *csvTable) get(record []string, column string) string {
	if idx, ok := t.headerIndex[column]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

// getFirst returns the first non-empty value among candidate columns,
// checked in priority order.
func (t *csvTable) getFirst(record []string, columns ...string) string {
	for _, column := range columns {
		if value := t.get(record, column); value != "" {
			return value
		}
	}
	return ""
}
