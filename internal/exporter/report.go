package exporter

import (
	"fmt"
	"strconv"

	"housepulse/internal/config"
	"housepulse/internal/services"
	"housepulse/pkg/contracts/domain"
)

// SummaryExporter writes per-geography summary reports derived from a
// snapshot. Nil figures export as empty cells, never as zeros.
type SummaryExporter struct {
	csvWriter *CSVWriter
}

// NewSummaryExporter creates a new summary report exporter
func NewSummaryExporter(paths *config.Paths) *SummaryExporter {
	return &SummaryExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportScope writes one scope's summaries to a CSV report file.
func (e *SummaryExporter) ExportScope(snapshot *services.Snapshot, scope string) (string, error) {
	summaries, err := snapshot.SummariesForScope(scope)
	if err != nil {
		return "", err
	}

	records := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		records = append(records, summaryRow(summary))
	}

	filename := fmt.Sprintf("housepulse_%s_summary.csv", scope)
	if err := e.csvWriter.WriteSimpleCSV(filename, summaryHeaders(), records); err != nil {
		return "", fmt.Errorf("failed to write %s summary report: %w", scope, err)
	}
	return filename, nil
}

// ExportAll writes one report per scope and returns the written filenames.
func (e *SummaryExporter) ExportAll(snapshot *services.Snapshot) ([]string, error) {
	var files []string
	for _, scope := range scopes() {
		file, err := e.ExportScope(snapshot, scope)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

func scopes() []string {
	return []string{
		string(domain.GeoNational),
		string(domain.GeoState),
		string(domain.GeoMetro),
	}
}

func summaryHeaders() []string {
	headers := []string{"geography", "latest_date"}
	for _, metric := range domain.AllMetrics() {
		headers = append(headers,
			string(metric)+"_latest",
			string(metric)+"_mm",
			string(metric)+"_yy",
			string(metric)+"_beta_1y",
			string(metric)+"_beta_3y",
			string(metric)+"_beta_5y",
		)
	}
	return headers
}

func summaryRow(summary *domain.GeographySummary) []string {
	row := []string{summary.GeoID, summary.LatestDate.String()}
	for _, metric := range domain.AllMetrics() {
		block := summary.MetricSummaryFor(metric)
		row = append(row,
			formatCell(block.Latest),
			formatCell(block.MoM),
			formatCell(block.YoY),
			formatCell(block.Beta1Y),
			formatCell(block.Beta3Y),
			formatCell(block.Beta5Y),
		)
	}
	return row
}

// formatCell renders a nullable figure; missing values stay empty.
func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
