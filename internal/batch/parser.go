package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/optionform/internal/domain/models"
	"github.com/guttosm/optionform/internal/form"
)

// expectedHeaders enforces strict column ordering for batch files.
// If the header doesn't match EXACTLY (order + count), the file is rejected.
var expectedHeaders = []string{
	models.FieldMethod,
	models.FieldType,
	models.FieldStockPrice,
	models.FieldStrikePrice,
	models.FieldVolatility,
	models.FieldRiskFreeRate,
	models.FieldTime,
}

// ErrEmptyFile is returned for a file without a header line.
var ErrEmptyFile = errors.New("empty batch file")

// readRows validates the header and returns one field set per data row.
// It fails on:
//   - header not matching expected order/length
//   - a row with a different column count
//   - malformed CSV (unterminated quotes, etc.)
//
// Cell values are kept exactly as written, including surrounding spaces
// and empty cells.
func readRows(r io.Reader) ([]form.Fields, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // checked explicitly for a better message

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	var rows []form.Fields
	lineNumber := 1 // header already read
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		fields := make(form.Fields, len(expectedHeaders))
		for i, id := range expectedHeaders {
			fields[id] = rec[i]
		}
		rows = append(rows, fields)
	}
	return rows, nil
}
