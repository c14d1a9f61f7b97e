package formatter

// Report is the assembled analysis result handed to a formatter. The
// analyzer converts aggregation and regression output into these rows so
// formatters stay free of data-layer imports.
type Report struct {
	Source        string     `json:"source"`
	Timezone      string     `json:"timezone"`
	Days          []DailyRow `json:"days"`
	Trend         *TrendInfo `json:"trend,omitempty"`
	PlotFile      string     `json:"plot_file,omitempty"`
	LinesScanned  int        `json:"lines_scanned"`
	WeightEntries int        `json:"weight_entries"`
	Overwrites    int        `json:"overwrites"`
	SkippedLines  int        `json:"skipped_lines"`
}

type DailyRow struct {
	Day     string  `json:"day"`
	Count   int     `json:"count"`
	MinKg   float64 `json:"min_kg"`
	MaxKg   float64 `json:"max_kg"`
	MeanKg  float64 `json:"mean_kg"`
	FirstKg float64 `json:"first_kg"`
	LastKg  float64 `json:"last_kg"`
	NetKg   float64 `json:"net_kg"`
}

type TrendInfo struct {
	SlopeKgPerDay float64 `json:"slope_kg_per_day"`
	InterceptKg   float64 `json:"intercept_kg"`
	RSquared      float64 `json:"r_squared"`
	Observations  int     `json:"observations"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	SpanDays      float64 `json:"span_days"`
	FittedLastKg  float64 `json:"fitted_last_kg"`
	ProjectedKg   float64 `json:"projected_30d_kg"`
}
