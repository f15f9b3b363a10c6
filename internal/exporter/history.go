package exporter

import (
	"fmt"

	"housepulse/internal/config"
	"housepulse/internal/services"
	"housepulse/pkg/contracts/domain"
)

// HistoryExporter writes the full observation history behind a snapshot, one
// row per geography and month. The metro scope can run to hundreds of
// thousands of rows, so rows are streamed to disk instead of buffered.
type HistoryExporter struct {
	csvWriter *CSVWriter
}

// NewHistoryExporter creates a new observation history exporter
func NewHistoryExporter(paths *config.Paths) *HistoryExporter {
	return &HistoryExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportScope streams one scope's observation history to a CSV report file.
// Rows are ordered by geography label, then by date descending within each
// geography, matching the series ordering.
func (e *HistoryExporter) ExportScope(snapshot *services.Snapshot, scope string) (string, error) {
	store, err := snapshot.StoreForScope(scope)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("housepulse_%s_history.csv", scope)
	stream, err := e.csvWriter.CreateStreamWriter(filename, historyHeaders())
	if err != nil {
		return "", fmt.Errorf("failed to create %s history report: %w", scope, err)
	}

	for _, geoID := range store.GeoIDs() {
		series, _ := store.Series(geoID)
		for i := 0; i < series.Len(); i++ {
			if err := stream.WriteRecord(historyRow(series.At(i))); err != nil {
				stream.Close()
				return "", fmt.Errorf("failed to write %s history report: %w", scope, err)
			}
		}
	}

	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s history report: %w", scope, err)
	}
	return filename, nil
}

// ExportAll streams one history report per scope and returns the written filenames.
func (e *HistoryExporter) ExportAll(snapshot *services.Snapshot) ([]string, error) {
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

func historyHeaders() []string {
	headers := []string{"geography", "date"}
	for _, metric := range domain.AllMetrics() {
		headers = append(headers, string(metric))
	}
	return headers
}

func historyRow(obs *domain.MarketObservation) []string {
	row := []string{obs.GeoID, obs.Date.String()}
	for _, metric := range domain.AllMetrics() {
		row = append(row, formatCell(obs.Value(metric)))
	}
	return row
}
