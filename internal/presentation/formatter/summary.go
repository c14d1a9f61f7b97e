package formatter

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-weight-trend/internal/util"
)

// SummaryFormatter is responsible for formatting and outputting summary reports.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format formats and outputs the summary view of a report.
func (f *SummaryFormatter) Format(report *Report) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Weight Trend Summary Report")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if report.Source != "" {
		fmt.Printf("Source: %s\n", report.Source)
	}
	if report.Timezone != "" {
		fmt.Printf("Timezone: %s\n", report.Timezone)
	}
	fmt.Println()

	// Check if there's any data
	if len(report.Days) == 0 {
		fmt.Println("No data to summarize")
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	// Add Date Range section
	firstDay := report.Days[0].Day
	lastDay := report.Days[len(report.Days)-1].Day
	if firstDay == lastDay {
		fmt.Printf("Date Range: %s\n", firstDay)
	} else {
		fmt.Printf("Date Range: %s to %s\n", firstDay, lastDay)
	}
	fmt.Println()

	// Readings section
	fmt.Println("Readings:")
	fmt.Printf("  Weight Entries: %s\n", formatNumber(report.WeightEntries))
	fmt.Printf("  Days Covered: %s\n", formatNumber(len(report.Days)))
	fmt.Printf("  Lines Scanned: %s\n", formatNumber(report.LinesScanned))
	fmt.Printf("  Overwritten Readings: %s\n", formatNumber(report.Overwrites))
	fmt.Printf("  Skipped Weight Lines: %s\n", formatNumber(report.SkippedLines))
	fmt.Println()

	// Weight section
	minKg := report.Days[0].MinKg
	maxKg := report.Days[0].MaxKg
	for _, row := range report.Days {
		if row.MinKg < minKg {
			minKg = row.MinKg
		}
		if row.MaxKg > maxKg {
			maxKg = row.MaxKg
		}
	}
	firstKg := report.Days[0].FirstKg
	lastKg := report.Days[len(report.Days)-1].LastKg

	fmt.Println("Weight:")
	fmt.Printf("  Minimum: %s\n", util.FormatWeight(minKg))
	fmt.Printf("  Maximum: %s\n", util.FormatWeight(maxKg))
	fmt.Printf("  First: %s\n", util.FormatWeight(firstKg))
	fmt.Printf("  Latest: %s\n", util.FormatWeight(lastKg))
	fmt.Printf("  Net Change: %s\n", util.FormatChange(lastKg-firstKg))
	fmt.Println()

	// Trend section
	fmt.Println("Trend:")
	if report.Trend == nil {
		fmt.Println("  Not enough data to fit a trend")
	} else {
		t := report.Trend
		fmt.Printf("  Slope: %s\n", util.FormatSlope(t.SlopeKgPerDay))
		fmt.Printf("  Intercept: %s\n", util.FormatWeight(t.InterceptKg))
		fmt.Printf("  R-squared: %.4f\n", t.RSquared)
		fmt.Printf("  Span: %.1f days\n", t.SpanDays)
		fmt.Printf("  Fitted Latest: %s\n", util.FormatWeight(t.FittedLastKg))
		fmt.Printf("  Projected (+30 days): %s\n", util.FormatWeight(t.ProjectedKg))
	}
	fmt.Println()

	if report.PlotFile != "" {
		fmt.Printf("Plot: %s\n", report.PlotFile)
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 60))

	return nil
}
