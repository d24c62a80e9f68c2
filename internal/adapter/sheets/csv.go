package sheets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

// naValues are the cell texts treated as missing: the markers spreadsheet
// exports and data tooling commonly write for empty answers.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-NaN":     {},
	"-nan":     {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

var errEmptySheet = errors.New("empty sheet: no header row")

// parseCSV reads a header row followed by data rows. Rows may be ragged;
// missing trailing cells read as invalid.
func parseCSV(r io.Reader) ([]string, []domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errEmptySheet
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records []domain.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row %d: %w", len(records)+2, err)
		}
		records = append(records, toRecord(row))
	}
	return header, records, nil
}

func toRecord(values []string) domain.RawRecord {
	rec := make(domain.RawRecord, len(values))
	for i, v := range values {
		rec[i] = cell(v)
	}
	return rec
}

func cell(v string) domain.Cell {
	_, missing := naValues[strings.TrimSpace(v)]
	return domain.Cell{Value: v, Valid: !missing}
}
