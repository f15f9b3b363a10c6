package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"housepulse/pkg/contracts/domain"
)

// Column names recognized in the source exports.
const (
	columnDate    = "month_date_yyyymm"
	columnCountry = "country"
	columnState   = "state"
	columnStateID = "state_id"
	columnCBSA    = "cbsa_code"
	columnRank    = "householdrank"
)

// metroLabelColumns are tried in order; the first non-empty cell wins.
var metroLabelColumns = []string{"cbsa_title", "metro_name", "metro"}

// ParseResult carries the typed observations extracted from one export
// together with row-level accounting for data-quality reporting.
type ParseResult struct {
	Observations []domain.MarketObservation
	TotalRows    int
	DroppedRows  int
}

// ParseObservations reads a delimited market export and produces typed
// observations for the given geography scope.
//
// The input is RFC-4180-style: comma separated, double quote as the optional
// enclosing and escaping character, embedded commas preserved inside quotes.
// Rows whose field count does not match the header are dropped, not fatal:
// a malformed row must never abort ingestion of the rest of the file. The
// hard failures are an unreadable or empty source with no header line, and a
// header that lacks the month date column. The second case is deliberately
// stricter than readability alone: without that column no row can yield a
// dated observation, so the export is unusable as a whole and dropping every
// row one by one would hide an upstream schema change.
func ParseObservations(r io.Reader, geoType domain.GeoType, logger *slog.Logger) (*ParseResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	// Field-count enforcement is ours: mismatched rows are dropped, and lazy
	// quoting keeps a stray quote from poisoning the rest of the file.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("source is empty: no header line")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns[columnDate]; !ok {
		return nil, fmt.Errorf("source has no %s column", columnDate)
	}

	result := &ParseResult{}
	line := 1

	for {
		line++
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Quote-level damage on a single line; skip it and keep going.
			result.TotalRows++
			result.DroppedRows++
			logger.Debug("dropped unreadable row", "line", line, "error", err)
			continue
		}

		result.TotalRows++
		if len(row) != len(header) {
			result.DroppedRows++
			logger.Debug("dropped row with field count mismatch",
				"line", line,
				"expected", len(header),
				"got", len(row))
			continue
		}

		obs, ok := buildObservation(row, columns, geoType)
		if !ok {
			result.DroppedRows++
			logger.Debug("dropped row without usable date or geography label", "line", line)
			continue
		}

		result.Observations = append(result.Observations, obs)
	}

	logger.Info("parsed market export",
		"geography_type", string(geoType),
		"rows", result.TotalRows,
		"dropped", result.DroppedRows,
		"observations", len(result.Observations))

	return result, nil
}

// buildObservation projects one raw row onto the typed observation schema.
func buildObservation(row []string, columns map[string]int, geoType domain.GeoType) (domain.MarketObservation, bool) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, ok := parseYearMonth(cell(columnDate))
	if !ok {
		return domain.MarketObservation{}, false
	}

	geoID := geographyLabel(cell, geoType)
	if geoID == "" {
		return domain.MarketObservation{}, false
	}

	obs := domain.MarketObservation{
		Date:    date,
		GeoType: geoType,
		GeoID:   geoID,
	}

	for _, m := range domain.AllMetrics() {
		obs.SetValue(m, parseNumeric(cell(string(m))))
		obs.SetPrecomputedMoM(m, parseNumeric(cell(string(m)+"_mm")))
		obs.SetPrecomputedYoY(m, parseNumeric(cell(string(m)+"_yy")))
	}

	obs.TotalListingCount = parseNumeric(cell("total_listing_count"))
	obs.PendingRatio = parseNumeric(cell("pending_ratio"))
	obs.StateID = cell(columnStateID)
	obs.CBSACode = cell(columnCBSA)
	obs.HouseholdRank = parseNumeric(cell(columnRank))

	return obs, true
}

// geographyLabel resolves the raw geography identifier for the scope.
func geographyLabel(cell func(string) string, geoType domain.GeoType) string {
	switch geoType {
	case domain.GeoNational:
		if label := cell(columnCountry); label != "" {
			return label
		}
		// Some national exports omit the country column entirely.
		return "United States"
	case domain.GeoState:
		return cell(columnState)
	case domain.GeoMetro:
		for _, name := range metroLabelColumns {
			if label := cell(name); label != "" {
				return label
			}
		}
	}
	return ""
}

// parseYearMonth parses a YYYYMM cell into a YearMonth.
func parseYearMonth(s string) (domain.YearMonth, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	ym := domain.YearMonth(n)
	if !ym.IsValid() {
		return 0, false
	}
	return ym, true
}

// parseNumeric coerces a cell to a float64 pointer. A cell is numeric if and
// only if it parses as a finite decimal number; anything else - empty cells,
// free text, NaN, infinities - is treated as missing rather than zero.
func parseNumeric(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
