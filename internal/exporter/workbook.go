package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"housepulse/internal/config"
	"housepulse/internal/services"
	"housepulse/pkg/contracts/domain"
)

// WorkbookExporter writes all scopes into one Excel workbook, one sheet per
// geography scope.
type WorkbookExporter struct {
	paths *config.Paths
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(paths *config.Paths) *WorkbookExporter {
	return &WorkbookExporter{paths: paths}
}

// Export writes the workbook and returns its path.
func (e *WorkbookExporter) Export(snapshot *services.Snapshot, filename string) (string, error) {
	if filename == "" {
		filename = "housepulse_summary.xlsx"
	}
	fullPath := e.paths.GetReportPath(filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, scope := range scopes() {
		summaries, err := snapshot.SummariesForScope(scope)
		if err != nil {
			return "", err
		}
		sheet := sheetName(scope)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return "", fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}
		if err := writeSheet(f, sheet, summaries); err != nil {
			return "", fmt.Errorf("failed to fill sheet %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}

func sheetName(scope string) string {
	switch scope {
	case string(domain.GeoNational):
		return "National"
	case string(domain.GeoState):
		return "States"
	case string(domain.GeoMetro):
		return "Metros"
	}
	return scope
}

func writeSheet(f *excelize.File, sheet string, summaries []*domain.GeographySummary) error {
	for col, header := range summaryHeaders() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	row := 2
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		for col, value := range summaryRow(summary) {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}
