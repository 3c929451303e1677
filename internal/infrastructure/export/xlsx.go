// Package export renders resource listings as spreadsheet workbooks.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"labmanager/internal/domain/resource"
	"labmanager/internal/shared/logger"
)

// maxSheetName is the longest sheet name spreadsheet applications accept.
const maxSheetName = 31

// XLSXGenerator renders sheets into xlsx workbooks.
type XLSXGenerator struct {
	logger logger.Interface
}

func NewXLSXGenerator(logger logger.Interface) *XLSXGenerator {
	return &XLSXGenerator{logger: logger}
}

// Render returns the workbook bytes: one sheet, header row in bold, then one
// row per record. A partial buffer never escapes on error.
func (g *XLSXGenerator) Render(sheet resource.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			g.logger.Warnw("failed to close workbook", "error", err)
		}
	}()

	name := sheetName(sheet.Name)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	if len(sheet.Header) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("failed to create header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header: %w", err)
		}
		if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := row
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func sheetName(entity string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, entity)
	if name == "" {
		name = "export"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}
