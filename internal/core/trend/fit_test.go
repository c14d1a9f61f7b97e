package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-weight-trend/internal/core/model"
)

// buildLinearSet places one observation per day exactly on the line
// startKg + slopePerDay*days.
func buildLinearSet(start time.Time, days int, startKg, slopePerDay float64) model.ObservationSet {
	set := make(model.ObservationSet)
	for i := 0; i < days; i++ {
		ts := start.AddDate(0, 0, i)
		set.Record(ts, startKg+slopePerDay*float64(i))
	}
	return set
}

func TestFitRecoversExactLine(t *testing.T) {
	start := time.Date(2024, 11, 1, 6, 0, 0, 0, time.UTC)
	set := buildLinearSet(start, 14, 70.0, -0.05)

	m, err := Fit(set)
	require.NoError(t, err)

	assert.InDelta(t, -0.05, m.SlopePerDay(), 1e-6)
	assert.InDelta(t, 1.0, m.RSquared, 1e-9)
	assert.Equal(t, 14, m.Observations)
	assert.Equal(t, start, m.Start)
	assert.Equal(t, start.AddDate(0, 0, 13), m.End)

	// The line passes through the data it was built from
	assert.InDelta(t, 70.0, m.PredictAt(start), 1e-6)
	assert.InDelta(t, 70.0-0.05*13, m.PredictAt(m.End), 1e-6)
}

func TestFitGainingTrend(t *testing.T) {
	start := time.Date(2024, 10, 27, 17, 1, 0, 0, time.UTC)
	set := buildLinearSet(start, 30, 3.0, 0.03)

	m, err := Fit(set)
	require.NoError(t, err)

	assert.InDelta(t, 0.03, m.SlopePerDay(), 1e-6)
	assert.Greater(t, m.SlopePerSecond, 0.0)
	assert.InDelta(t, 3.0+0.03*40, m.PredictAt(start.AddDate(0, 0, 40)), 1e-6,
		"projection extends the fitted line")
}

func TestFitFlatSeries(t *testing.T) {
	start := time.Date(2024, 11, 1, 6, 0, 0, 0, time.UTC)
	set := buildLinearSet(start, 5, 70.0, 0)

	m, err := Fit(set)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, m.SlopePerDay(), 1e-9)
	assert.Equal(t, 1.0, m.RSquared)
}

func TestFitEmptySet(t *testing.T) {
	m, err := Fit(make(model.ObservationSet))
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrNoObservations)
}

func TestFitSinglePoint(t *testing.T) {
	set := make(model.ObservationSet)
	set.Record(time.Date(2024, 11, 6, 6, 0, 0, 0, time.UTC), 70.5)

	m, err := Fit(set)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitDegenerateTimestamps(t *testing.T) {
	// Distinct map keys that collapse to the same epoch second
	set := make(model.ObservationSet)
	base := time.Date(2024, 11, 6, 6, 0, 0, 0, time.UTC)
	set.Record(base, 70.5)
	set.Record(base.Add(500*time.Millisecond), 71.0)
	require.Len(t, set, 2)

	m, err := Fit(set)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestModelSpan(t *testing.T) {
	start := time.Date(2024, 11, 1, 6, 0, 0, 0, time.UTC)
	set := buildLinearSet(start, 8, 70.0, -0.1)

	m, err := Fit(set)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, m.Span())
}

func TestSlopePerDayConversion(t *testing.T) {
	m := &Model{SlopePerSecond: 1.0 / 86400.0}
	assert.InDelta(t, 1.0, m.SlopePerDay(), 1e-12)
}
