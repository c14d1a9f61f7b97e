package aggregator

import (
	"sort"
	"time"

	"github.com/penwyp/go-weight-trend/internal/core/constants"
	"github.com/penwyp/go-weight-trend/internal/core/model"
)

// DailyAggregator rolls observations up into per-day statistics in a
// fixed timezone.
type DailyAggregator struct {
	loc *time.Location
}

// DailyStat holds aggregated statistics for one civil day.
type DailyStat struct {
	Day     string    `json:"day"` // YYYY-MM-DD in the configured zone
	Date    time.Time `json:"-"`   // midnight of that day
	Count   int       `json:"count"`
	MinKg   float64   `json:"min_kg"`
	MaxKg   float64   `json:"max_kg"`
	MeanKg  float64   `json:"mean_kg"`
	FirstKg float64   `json:"first_kg"`
	LastKg  float64   `json:"last_kg"`
	NetKg   float64   `json:"net_kg"` // last minus first within the day
}

// NewDailyAggregator creates an aggregator grouping by civil day in loc.
func NewDailyAggregator(loc *time.Location) *DailyAggregator {
	if loc == nil {
		loc = time.Local
	}
	return &DailyAggregator{loc: loc}
}

// truncateToDay returns midnight of the timestamp's civil day in the
// aggregator's timezone.
func (a *DailyAggregator) truncateToDay(ts time.Time) time.Time {
	local := ts.In(a.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)
}

// Aggregate groups the observation set into day rows sorted ascending by
// day. Within a day, first and last follow observation time order.
func (a *DailyAggregator) Aggregate(set model.ObservationSet) []DailyStat {
	type bucket struct {
		day time.Time
		obs []model.Observation
	}
	buckets := make(map[time.Time]*bucket)

	// Sorted input keeps each bucket's observations in time order.
	for _, o := range set.Sorted() {
		day := a.truncateToDay(o.Timestamp)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{day: day}
			buckets[day] = b
		}
		b.obs = append(b.obs, o)
	}

	result := make([]DailyStat, 0, len(buckets))
	for _, b := range buckets {
		stat := DailyStat{
			Day:     b.day.Format(constants.DayKeyLayout),
			Date:    b.day,
			Count:   len(b.obs),
			MinKg:   b.obs[0].WeightKg,
			MaxKg:   b.obs[0].WeightKg,
			FirstKg: b.obs[0].WeightKg,
			LastKg:  b.obs[len(b.obs)-1].WeightKg,
		}
		sum := 0.0
		for _, o := range b.obs {
			if o.WeightKg < stat.MinKg {
				stat.MinKg = o.WeightKg
			}
			if o.WeightKg > stat.MaxKg {
				stat.MaxKg = o.WeightKg
			}
			sum += o.WeightKg
		}
		stat.MeanKg = sum / float64(len(b.obs))
		stat.NetKg = stat.LastKg - stat.FirstKg
		result = append(result, stat)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}
