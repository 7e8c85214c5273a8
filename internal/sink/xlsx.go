package sink

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSX collects batches into one workbook, one sheet per table, with the
// column names as the header row. Close saves the workbook.
type XLSX struct {
	f      *excelize.File
	path   string
	sheets int
}

func NewXLSX(path string) *XLSX {
	return &XLSX{f: excelize.NewFile(), path: path}
}

func (s *XLSX) Write(ctx context.Context, t Table) error {
	idx, err := s.f.NewSheet(t.Name)
	if err != nil {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("create sheet: %w", err)}
	}
	if s.sheets == 0 {
		s.f.SetActiveSheet(idx)
	}
	s.sheets++

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := s.f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("write header: %w", err)}
	}

	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return &WriteError{Table: t.Name, Row: i, Err: err}
		}
		if err := checkRow(t, i, row); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return &WriteError{Table: t.Name, Row: i, Err: err}
		}
		values := row
		if err := s.f.SetSheetRow(t.Name, cell, &values); err != nil {
			return &WriteError{Table: t.Name, Row: i, Err: err}
		}
	}
	return nil
}

// Close drops the default sheet, saves the workbook and releases it.
func (s *XLSX) Close() error {
	if s.sheets > 0 {
		if err := s.f.DeleteSheet(defaultSheet); err != nil {
			s.f.Close()
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}
	if err := s.f.SaveAs(s.path); err != nil {
		s.f.Close()
		return fmt.Errorf("save workbook %s: %w", s.path, err)
	}
	return s.f.Close()
}
