package model

import (
	"sort"
	"time"
)

// Observation is a resolved weight reading: the full timestamp combined
// from a date header and an entry's time-of-day, plus the measured weight
// in kilograms.
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	WeightKg  float64   `json:"weight_kg"`
}

// ObservationSet maps resolved timestamps to weights in kilograms.
// Recording an existing timestamp overwrites the earlier value (last
// write wins). All keys must be built in the same *time.Location so map
// equality behaves.
type ObservationSet map[time.Time]float64

// Record stores kg at ts and reports whether an earlier value was
// replaced.
func (s ObservationSet) Record(ts time.Time, kg float64) bool {
	_, exists := s[ts]
	s[ts] = kg
	return exists
}

// Sorted returns the observations ordered by ascending timestamp.
func (s ObservationSet) Sorted() []Observation {
	out := make([]Observation, 0, len(s))
	for ts, kg := range s {
		out = append(out, Observation{Timestamp: ts, WeightKg: kg})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Bounds returns the earliest and latest timestamps in the set. ok is
// false when the set is empty.
func (s ObservationSet) Bounds() (earliest, latest time.Time, ok bool) {
	for ts := range s {
		if !ok {
			earliest, latest = ts, ts
			ok = true
			continue
		}
		if ts.Before(earliest) {
			earliest = ts
		}
		if ts.After(latest) {
			latest = ts
		}
	}
	return earliest, latest, ok
}

// MinimalDate returns the sentinel date a weight entry resolves to when
// no date header preceded it: year 1, January 1, midnight in loc.
func MinimalDate(loc *time.Location) time.Time {
	return time.Date(1, time.January, 1, 0, 0, 0, 0, loc)
}

// LineKind classifies a single export line.
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineDateHeader
	LineWeightEntry
)

func (k LineKind) String() string {
	switch k {
	case LineDateHeader:
		return "date_header"
	case LineWeightEntry:
		return "weight_entry"
	default:
		return "unrecognized"
	}
}

// ParsedLine is the outcome of classifying one export line. Date is set
// for LineDateHeader; Hour, Minute and WeightKg are set for
// LineWeightEntry.
type ParsedLine struct {
	Kind     LineKind
	Date     time.Time
	Hour     int
	Minute   int
	WeightKg float64
}
