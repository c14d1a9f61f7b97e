package constants

import "time"

const (
	// Slope normalization
	SecondsPerDay      = int64(24 * 3600)
	SecondsPerDayFloat = float64(24 * 3600)
	HoursPerDay        = 24
	DayDuration        = 24 * time.Hour

	// Trend projection horizon for summary output
	ProjectionDays     = 30
	ProjectionDuration = ProjectionDays * DayDuration

	// Export date header layout, e.g. "Wed, Nov 06, 2024"
	DateHeaderLayout = "Mon, Jan 02, 2006"

	// Civil day key layout used by aggregation and report rows
	DayKeyLayout = "2006-01-02"
)
