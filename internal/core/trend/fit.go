package trend

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/penwyp/go-weight-trend/internal/core/constants"
	"github.com/penwyp/go-weight-trend/internal/core/model"
)

var (
	// ErrNoObservations is returned when the observation set is empty.
	ErrNoObservations = errors.New("trend: no observations to fit")
	// ErrInsufficientData is returned when fewer than two distinct
	// timestamps are available, including the degenerate case where all
	// observations share one timestamp.
	ErrInsufficientData = errors.New("trend: need at least two distinct timestamps")
)

// Model is a fitted weight-over-time line. X is seconds since the Unix
// epoch, Y is kilograms.
type Model struct {
	InterceptKg    float64   `json:"intercept_kg"`
	SlopePerSecond float64   `json:"slope_per_second"`
	RSquared       float64   `json:"r_squared"`
	Observations   int       `json:"observations"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
}

// Fit computes an ordinary least-squares regression of weight against
// time over the observation set.
func Fit(set model.ObservationSet) (*Model, error) {
	if len(set) == 0 {
		return nil, ErrNoObservations
	}

	obs := set.Sorted()
	xs := make([]float64, len(obs))
	ys := make([]float64, len(obs))
	distinct := 0
	for i, o := range obs {
		xs[i] = float64(o.Timestamp.Unix())
		ys[i] = o.WeightKg
		if i == 0 || xs[i] != xs[i-1] {
			distinct++
		}
	}
	if distinct < 2 {
		return nil, ErrInsufficientData
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	if math.IsNaN(r2) {
		// A flat series is fit exactly by the flat line.
		r2 = 1
	}

	return &Model{
		InterceptKg:    intercept,
		SlopePerSecond: slope,
		RSquared:       r2,
		Observations:   len(obs),
		Start:          obs[0].Timestamp,
		End:            obs[len(obs)-1].Timestamp,
	}, nil
}

// SlopePerDay returns the fitted slope normalized to kilograms per day.
func (m *Model) SlopePerDay() float64 {
	return m.SlopePerSecond * constants.SecondsPerDayFloat
}

// PredictAt evaluates the fitted line at t.
func (m *Model) PredictAt(t time.Time) float64 {
	return m.InterceptKg + m.SlopePerSecond*float64(t.Unix())
}

// Span returns the observed time range covered by the fit.
func (m *Model) Span() time.Duration {
	return m.End.Sub(m.Start)
}
