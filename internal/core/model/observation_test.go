package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationSetRecord(t *testing.T) {
	set := make(ObservationSet)
	ts := time.Date(2024, 11, 6, 6, 0, 0, 0, time.UTC)

	replaced := set.Record(ts, 70.5)
	assert.False(t, replaced)
	assert.Equal(t, 70.5, set[ts])

	replaced = set.Record(ts, 71.0)
	assert.True(t, replaced)
	assert.Equal(t, 71.0, set[ts], "later value wins")
	assert.Len(t, set, 1)
}

func TestObservationSetSorted(t *testing.T) {
	set := make(ObservationSet)
	t1 := time.Date(2024, 11, 6, 6, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 11, 7, 6, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 11, 5, 22, 30, 0, 0, time.UTC)
	set.Record(t1, 70.5)
	set.Record(t2, 70.3)
	set.Record(t3, 70.8)

	sorted := set.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, t3, sorted[0].Timestamp)
	assert.Equal(t, t1, sorted[1].Timestamp)
	assert.Equal(t, t2, sorted[2].Timestamp)
	assert.Equal(t, 70.8, sorted[0].WeightKg)
}

func TestObservationSetBounds(t *testing.T) {
	set := make(ObservationSet)
	_, _, ok := set.Bounds()
	assert.False(t, ok, "empty set has no bounds")

	t1 := time.Date(2024, 11, 5, 6, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 11, 9, 6, 0, 0, 0, time.UTC)
	set.Record(t2, 70.1)
	set.Record(t1, 70.9)
	set.Record(time.Date(2024, 11, 7, 6, 0, 0, 0, time.UTC), 70.5)

	earliest, latest, ok := set.Bounds()
	require.True(t, ok)
	assert.Equal(t, t1, earliest)
	assert.Equal(t, t2, latest)
}

func TestMinimalDate(t *testing.T) {
	loc := time.UTC
	min := MinimalDate(loc)
	assert.Equal(t, 1, min.Year())
	assert.Equal(t, time.January, min.Month())
	assert.Equal(t, 1, min.Day())
	assert.Equal(t, 0, min.Hour())
	assert.Equal(t, loc, min.Location())
	assert.True(t, min.Equal(time.Time{}))
}

func TestLineKindString(t *testing.T) {
	tests := []struct {
		kind LineKind
		want string
	}{
		{LineDateHeader, "date_header"},
		{LineWeightEntry, "weight_entry"},
		{LineUnrecognized, "unrecognized"},
		{LineKind(99), "unrecognized"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}
