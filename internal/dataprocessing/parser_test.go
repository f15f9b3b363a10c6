package dataprocessing

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housepulse/pkg/contracts/domain"
)

func TestParseObservations(t *testing.T) {
	t.Run("parses a state export", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,state,state_id,median_listing_price,active_listing_count,median_days_on_market",
			"202403,Texas,TX,385000,45210,42",
			"202403,Nevada,NV,449000,9120,38",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.NoError(t, err)

		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 0, result.DroppedRows)
		require.Len(t, result.Observations, 2)

		obs := result.Observations[0]
		assert.Equal(t, domain.YearMonth(202403), obs.Date)
		assert.Equal(t, domain.GeoState, obs.GeoType)
		assert.Equal(t, "Texas", obs.GeoID)
		assert.Equal(t, "TX", obs.StateID)
		require.NotNil(t, obs.MedianListingPrice)
		assert.Equal(t, 385000.0, *obs.MedianListingPrice)
		require.NotNil(t, obs.ActiveListingCount)
		assert.Equal(t, 45210.0, *obs.ActiveListingCount)
	})

	t.Run("missing header is fatal", func(t *testing.T) {
		_, err := ParseObservations(strings.NewReader(""), domain.GeoState, slog.Default())
		assert.Error(t, err)
	})

	t.Run("missing date column is fatal", func(t *testing.T) {
		input := "state,median_listing_price\nTexas,385000\n"
		_, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "month_date_yyyymm")
	})

	t.Run("field count mismatch drops the row only", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,state,median_listing_price",
			"202403,Texas,385000",
			"202403,Nevada",
			"202403,Ohio,215000,extra",
			"202402,Texas,380000",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.NoError(t, err)

		assert.Equal(t, 4, result.TotalRows)
		assert.Equal(t, 2, result.DroppedRows)
		assert.Len(t, result.Observations, 2)
	})

	t.Run("unparseable date drops the row", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,state",
			"not-a-date,Texas",
			"202499,Texas",
			"202403,Texas",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.NoError(t, err)

		assert.Equal(t, 2, result.DroppedRows)
		require.Len(t, result.Observations, 1)
		assert.Equal(t, domain.YearMonth(202403), result.Observations[0].Date)
	})

	t.Run("missing geography label drops the row", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,state",
			"202403,",
			"202403,Texas",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.NoError(t, err)

		assert.Equal(t, 1, result.DroppedRows)
		assert.Len(t, result.Observations, 1)
	})

	t.Run("non-numeric cells become missing, not zero", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,state,median_listing_price,active_listing_count,pending_ratio",
			"202403,Texas,n/a,,NaN",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.NoError(t, err)
		require.Len(t, result.Observations, 1)

		obs := result.Observations[0]
		assert.Nil(t, obs.MedianListingPrice)
		assert.Nil(t, obs.ActiveListingCount)
		assert.Nil(t, obs.PendingRatio)
	})

	t.Run("quoted labels keep embedded commas", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,cbsa_title,cbsa_code,median_listing_price",
			"202403,\"Austin-Round Rock-San Marcos, TX\",12420,539000",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoMetro, slog.Default())
		require.NoError(t, err)
		require.Len(t, result.Observations, 1)

		obs := result.Observations[0]
		assert.Equal(t, "Austin-Round Rock-San Marcos, TX", obs.GeoID)
		assert.Equal(t, "12420", obs.CBSACode)
	})

	t.Run("precomputed change columns are captured", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,state,median_listing_price,median_listing_price_mm,median_listing_price_yy",
			"202403,Texas,385000,0.012,-0.034",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.NoError(t, err)
		require.Len(t, result.Observations, 1)

		obs := result.Observations[0]
		mm := obs.PrecomputedMoM(domain.MetricMedianListingPrice)
		require.NotNil(t, mm)
		assert.Equal(t, 0.012, *mm)
		yy := obs.PrecomputedYoY(domain.MetricMedianListingPrice)
		require.NotNil(t, yy)
		assert.Equal(t, -0.034, *yy)
	})

	t.Run("header names are case insensitive", func(t *testing.T) {
		input := strings.Join([]string{
			"Month_Date_YYYYMM,State,Median_Listing_Price",
			"202403,Texas,385000",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoState, slog.Default())
		require.NoError(t, err)
		assert.Len(t, result.Observations, 1)
	})
}

func TestGeographyLabel(t *testing.T) {
	t.Run("national falls back to United States", func(t *testing.T) {
		input := "month_date_yyyymm,median_listing_price\n202403,425000\n"
		result, err := ParseObservations(strings.NewReader(input), domain.GeoNational, slog.Default())
		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		assert.Equal(t, "United States", result.Observations[0].GeoID)
	})

	t.Run("national prefers the country column", func(t *testing.T) {
		input := "month_date_yyyymm,country,median_listing_price\n202403,USA,425000\n"
		result, err := ParseObservations(strings.NewReader(input), domain.GeoNational, slog.Default())
		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		assert.Equal(t, "USA", result.Observations[0].GeoID)
	})

	t.Run("metro tries label columns in order", func(t *testing.T) {
		input := strings.Join([]string{
			"month_date_yyyymm,cbsa_title,metro_name",
			"202403,,Phoenix-Mesa-Chandler AZ",
			"202402,\"Austin-Round Rock, TX\",ignored",
		}, "\n")

		result, err := ParseObservations(strings.NewReader(input), domain.GeoMetro, slog.Default())
		require.NoError(t, err)
		require.Len(t, result.Observations, 2)
		assert.Equal(t, "Phoenix-Mesa-Chandler AZ", result.Observations[0].GeoID)
		assert.Equal(t, "Austin-Round Rock, TX", result.Observations[1].GeoID)
	})
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{"integer", "42", fptr(42)},
		{"decimal", "0.125", fptr(0.125)},
		{"negative", "-3.5", fptr(-3.5)},
		{"empty", "", nil},
		{"text", "n/a", nil},
		{"nan", "NaN", nil},
		{"infinity", "Inf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseNumeric(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func fptr(v float64) *float64 { return &v }
