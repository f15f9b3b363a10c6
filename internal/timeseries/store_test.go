package timeseries

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housepulse/pkg/contracts/domain"
)

func fptr(v float64) *float64 { return &v }

func obs(geoType domain.GeoType, geoID string, date domain.YearMonth, listings float64) domain.MarketObservation {
	return domain.MarketObservation{
		Date:               date,
		GeoType:            geoType,
		GeoID:              geoID,
		ActiveListingCount: fptr(listings),
	}
}

func TestNewStore(t *testing.T) {
	t.Run("groups by exact raw label", func(t *testing.T) {
		store := NewStore(domain.GeoState, []domain.MarketObservation{
			obs(domain.GeoState, "Texas", 202401, 100),
			obs(domain.GeoState, "texas", 202401, 200),
		}, slog.Default())

		// Case-variant labels are distinct geographies at this layer;
		// normalization belongs to the reconciler.
		assert.Equal(t, 2, store.Len())
		assert.Equal(t, []string{"Texas", "texas"}, store.GeoIDs())
	})

	t.Run("sorts observations most recent first", func(t *testing.T) {
		store := NewStore(domain.GeoState, []domain.MarketObservation{
			obs(domain.GeoState, "Texas", 202401, 100),
			obs(domain.GeoState, "Texas", 202403, 300),
			obs(domain.GeoState, "Texas", 202402, 200),
		}, slog.Default())

		series, ok := store.Series("Texas")
		require.True(t, ok)
		assert.Equal(t, []domain.YearMonth{202403, 202402, 202401}, series.Dates())
		require.NotNil(t, series.Latest())
		assert.Equal(t, domain.YearMonth(202403), series.Latest().Date)
	})

	t.Run("duplicate month keeps the last source row", func(t *testing.T) {
		store := NewStore(domain.GeoState, []domain.MarketObservation{
			obs(domain.GeoState, "Texas", 202401, 100),
			obs(domain.GeoState, "Texas", 202401, 150),
		}, slog.Default())

		series, ok := store.Series("Texas")
		require.True(t, ok)
		assert.Equal(t, 1, series.Len())
		require.NotNil(t, series.Latest().ActiveListingCount)
		assert.Equal(t, 150.0, *series.Latest().ActiveListingCount)
	})

	t.Run("ignores observations of another scope", func(t *testing.T) {
		store := NewStore(domain.GeoState, []domain.MarketObservation{
			obs(domain.GeoState, "Texas", 202401, 100),
			obs(domain.GeoMetro, "Austin, TX", 202401, 50),
		}, slog.Default())

		assert.Equal(t, 1, store.Len())
		_, ok := store.Series("Austin, TX")
		assert.False(t, ok)
	})

	t.Run("drops invalid observations", func(t *testing.T) {
		store := NewStore(domain.GeoState, []domain.MarketObservation{
			{Date: 202401, GeoType: domain.GeoState, GeoID: ""},
			{Date: 0, GeoType: domain.GeoState, GeoID: "Texas"},
		}, slog.Default())
		assert.Equal(t, 0, store.Len())
	})
}

func TestSeriesLookups(t *testing.T) {
	store := NewStore(domain.GeoMetro, []domain.MarketObservation{
		obs(domain.GeoMetro, "Austin, TX", 202401, 100),
		obs(domain.GeoMetro, "Austin, TX", 202402, 110),
		obs(domain.GeoMetro, "Austin, TX", 202403, 120),
	}, slog.Default())

	series, ok := store.Series("Austin, TX")
	require.True(t, ok)

	t.Run("At indexes from most recent", func(t *testing.T) {
		assert.Equal(t, domain.YearMonth(202403), series.At(0).Date)
		assert.Equal(t, domain.YearMonth(202401), series.At(2).Date)
	})

	t.Run("Observation finds an exact month", func(t *testing.T) {
		o, found := series.Observation(202402)
		require.True(t, found)
		assert.Equal(t, 110.0, *o.ActiveListingCount)

		_, found = series.Observation(202412)
		assert.False(t, found)
	})

	t.Run("Latest via store", func(t *testing.T) {
		latest, found := store.Latest("Austin, TX")
		require.True(t, found)
		assert.Equal(t, domain.YearMonth(202403), latest.Date)

		_, found = store.Latest("Nowhere")
		assert.False(t, found)
	})

	t.Run("unknown geography", func(t *testing.T) {
		_, found := store.Series("Dallas, TX")
		assert.False(t, found)
	})
}
