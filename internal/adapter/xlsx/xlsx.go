// Package xlsx writes a report view as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

// Sheet names in workbook order.
const (
	EntriesSheet     = "Entries"
	DamageTypesSheet = "DamageTypes"
	TopRoomsSheet    = "TopRooms"
)

// ContentType is the MIME type of a workbook written by Write.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Write encodes report as a workbook to w.
func Write(w io.Writer, report domain.Report) error {
	f, err := build(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save writes report as a workbook to path, creating parent directories.
func Save(path string, report domain.Report) error {
	f, err := build(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func build(report domain.Report) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer closeOnError(f, &err)

	if err := f.SetSheetName(f.GetSheetName(0), EntriesSheet); err != nil {
		return nil, err
	}
	for _, name := range []string{DamageTypesSheet, TopRoomsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	entries := make([][]any, len(report.Entries))
	for i, e := range report.Entries {
		entries[i] = []any{e.Room, e.DamageType, e.ImageLink}
	}
	types := make([][]any, len(report.Frequencies))
	for i, row := range report.Frequencies {
		types[i] = []any{row.DamageType, row.Count}
	}
	rooms := make([][]any, len(report.TopRooms))
	for i, row := range report.TopRooms {
		rooms[i] = []any{row.Room, row.Count}
	}

	tables := []struct {
		sheet  string
		header []any
		rows   [][]any
	}{
		{EntriesSheet, []any{domain.RoomLabel, domain.DamageLabel, domain.ImageLabelThai}, entries},
		{DamageTypesSheet, []any{"ประเภทความเสียหาย", "จำนวน"}, types},
		{TopRoomsSheet, []any{domain.RoomLabel, "จำนวน"}, rooms},
	}
	for _, t := range tables {
		if err := writeTable(f, t.sheet, bold, t.header, t.rows); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", t.sheet, err)
		}
	}
	return f, nil
}

// closeOnError closes c when *err is set, for deferred cleanup of a
// half-built workbook.
func closeOnError(c io.Closer, err *error) {
	if *err != nil {
		_ = c.Close()
	}
}

func writeTable(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
