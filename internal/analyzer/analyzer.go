package analyzer

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"time"

	"github.com/penwyp/go-weight-trend/internal/core/constants"
	"github.com/penwyp/go-weight-trend/internal/core/model"
	"github.com/penwyp/go-weight-trend/internal/core/trend"
	"github.com/penwyp/go-weight-trend/internal/data/aggregator"
	"github.com/penwyp/go-weight-trend/internal/data/extractor"
	"github.com/penwyp/go-weight-trend/internal/data/scanner"
	"github.com/penwyp/go-weight-trend/internal/presentation/chart"
	"github.com/penwyp/go-weight-trend/internal/presentation/formatter"
	"github.com/penwyp/go-weight-trend/internal/util"
)

type Config struct {
	LogFile      string // explicit log file; wins over DataDir discovery
	DataDir      string // directory scanned for the newest export when LogFile is empty
	PlotFile     string
	NoPlot       bool
	OutputFormat string
	Timezone     string
	Duration     string
	Limit        int
}

type Analyzer struct {
	config     *Config
	scanner    *scanner.FileScanner
	extractor  *extractor.Extractor
	aggregator *aggregator.DailyAggregator
	renderer   *chart.Renderer
	loc        *time.Location
}

// Analysis carries everything a single pass over the log produced.
type Analysis struct {
	Source      string
	Set         model.ObservationSet
	Stats       extractor.Stats
	Fit         *trend.Model
	FitError    error
	Report      *formatter.Report
	SourceError error // set when the log file could not be located or read
}

func New(config *Config) *Analyzer {
	timezone := config.Timezone
	if timezone == "" {
		timezone = "Local"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		util.LogWarn(fmt.Sprintf("Invalid timezone %s, falling back to local time: %v", config.Timezone, err))
		loc = time.Local
	}

	return &Analyzer{
		config:     config,
		scanner:    scanner.NewFileScanner(config.DataDir),
		extractor:  extractor.NewExtractor(loc),
		aggregator: aggregator.NewDailyAggregator(loc),
		renderer:   chart.NewRenderer(loc),
		loc:        loc,
	}
}

// Run performs one full analysis pass: extract, fit, plot, and print the
// report in the configured format.
func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogInfo("Starting weight log analysis...")

	analysis := a.Analyze()

	if analysis.SourceError != nil {
		a.printSourceDiagnostic(analysis)
	}

	// Phase 6: Render plot
	var plotDuration time.Duration
	if a.ShouldPlot(analysis) {
		plotStart := time.Now()
		if err := a.RenderPlot(analysis); err != nil {
			return fmt.Errorf("failed to render plot: %w", err)
		}
		analysis.Report.PlotFile = a.config.PlotFile
		plotDuration = time.Since(plotStart)
		util.LogDebug(fmt.Sprintf("Phase 6 - Plot rendering duration: %v, file: %s", plotDuration, a.config.PlotFile))
	}

	// Phase 7: Format and output
	outputStart := time.Now()
	if err := a.formatAndOutput(analysis.Report); err != nil {
		return err
	}
	outputDuration := time.Since(outputStart)
	util.LogDebug(fmt.Sprintf("Phase 7 - Formatting and output duration: %v", outputDuration))

	totalDuration := time.Since(startTime)
	util.LogDebug(fmt.Sprintf("Total duration: %v (plot:%v output:%v)",
		totalDuration, plotDuration, outputDuration))

	// A missing or unreadable log is reported as a diagnostic, not a
	// failure. Degenerate data surfaces through the exit code once the
	// report has been printed.
	if analysis.SourceError == nil && analysis.FitError != nil {
		return analysis.FitError
	}

	return nil
}

// Analyze runs extraction through report assembly without any output. All
// failure modes are folded into the returned Analysis.
func (a *Analyzer) Analyze() *Analysis {
	analysis := &Analysis{Set: model.ObservationSet{}}

	// Phase 1: Resolve the source file
	resolveStart := time.Now()
	source, err := a.ResolveSource()
	if err != nil {
		analysis.SourceError = err
		analysis.Report = a.buildReport(analysis)
		return analysis
	}
	analysis.Source = source
	util.LogDebug(fmt.Sprintf("Phase 1 - Source resolution duration: %v, file: %s", time.Since(resolveStart), source))

	// Phase 2: Extract observations
	extractStart := time.Now()
	set, stats, err := a.extractor.ExtractFile(source)
	if err != nil {
		analysis.SourceError = err
		analysis.Report = a.buildReport(analysis)
		return analysis
	}
	analysis.Set = set
	analysis.Stats = stats
	util.LogDebug(fmt.Sprintf("Phase 2 - Extraction duration: %v, entries: %d", time.Since(extractStart), len(set)))

	// Phase 3: Window filters
	filterStart := time.Now()
	analysis.Set = a.filterByDuration(analysis.Set)
	analysis.Set = a.applyLimit(analysis.Set)
	util.LogDebug(fmt.Sprintf("Phase 3 - Filtering duration: %v, entries kept: %d", time.Since(filterStart), len(analysis.Set)))

	// Phase 4: Fit the regression
	fitStart := time.Now()
	fit, err := trend.Fit(analysis.Set)
	if err != nil {
		analysis.FitError = err
		util.LogDebug(fmt.Sprintf("Phase 4 - Regression skipped: %v", err))
	} else {
		analysis.Fit = fit
		util.LogDebug(fmt.Sprintf("Phase 4 - Regression duration: %v, slope: %.6f kg/day", time.Since(fitStart), fit.SlopePerDay()))
	}

	// Phase 5: Aggregate and assemble the report
	aggStart := time.Now()
	analysis.Report = a.buildReport(analysis)
	util.LogDebug(fmt.Sprintf("Phase 5 - Aggregation duration: %v, days: %d", time.Since(aggStart), len(analysis.Report.Days)))

	return analysis
}

// ResolveSource returns the log file to analyze: the configured file if
// set, otherwise the newest export under the data directory.
func (a *Analyzer) ResolveSource() (string, error) {
	if a.config.LogFile != "" {
		return a.config.LogFile, nil
	}
	return a.scanner.LatestExport()
}

// ShouldPlot reports whether a chart should be rendered for the analysis.
func (a *Analyzer) ShouldPlot(analysis *Analysis) bool {
	return !a.config.NoPlot && analysis.SourceError == nil && len(analysis.Set) > 0
}

// RenderPlot draws the chart for the analysis into the configured file.
func (a *Analyzer) RenderPlot(analysis *Analysis) error {
	return a.renderer.Render(analysis.Set, analysis.Fit, a.config.PlotFile)
}

func (a *Analyzer) printSourceDiagnostic(analysis *Analysis) {
	err := analysis.SourceError
	switch {
	case analysis.Source == "":
		fmt.Printf("Error: %v\n", err)
	case errors.Is(err, fs.ErrNotExist):
		fmt.Printf("Error: log file %s was not found\n", analysis.Source)
	default:
		fmt.Printf("Error: could not read log file %s: %v\n", analysis.Source, err)
	}
}

func (a *Analyzer) buildReport(analysis *Analysis) *formatter.Report {
	daily := a.aggregator.Aggregate(analysis.Set)

	report := &formatter.Report{
		Source:        analysis.Source,
		Timezone:      a.loc.String(),
		Days:          make([]formatter.DailyRow, 0, len(daily)),
		LinesScanned:  analysis.Stats.LinesScanned,
		WeightEntries: analysis.Stats.WeightEntries,
		Overwrites:    analysis.Stats.Overwrites,
		SkippedLines:  analysis.Stats.SkippedWeightLines,
	}

	for _, day := range daily {
		report.Days = append(report.Days, formatter.DailyRow{
			Day:     day.Day,
			Count:   day.Count,
			MinKg:   day.MinKg,
			MaxKg:   day.MaxKg,
			MeanKg:  day.MeanKg,
			FirstKg: day.FirstKg,
			LastKg:  day.LastKg,
			NetKg:   day.NetKg,
		})
	}

	if fit := analysis.Fit; fit != nil {
		report.Trend = &formatter.TrendInfo{
			SlopeKgPerDay: fit.SlopePerDay(),
			InterceptKg:   fit.InterceptKg,
			RSquared:      fit.RSquared,
			Observations:  fit.Observations,
			Start:         fit.Start.In(a.loc).Format(time.RFC3339),
			End:           fit.End.In(a.loc).Format(time.RFC3339),
			SpanDays:      fit.Span().Hours() / constants.HoursPerDay,
			FittedLastKg:  fit.PredictAt(fit.End),
			ProjectedKg:   fit.PredictAt(fit.End.Add(constants.ProjectionDuration)),
		}
	}

	return report
}

func (a *Analyzer) filterByDuration(set model.ObservationSet) model.ObservationSet {
	if a.config.Duration == "" {
		return set
	}

	fromTime, err := parseDuration(a.config.Duration, a.loc)
	if err != nil {
		util.LogError(fmt.Sprintf("Failed to parse duration: %v", err))
		return set
	}

	// toTime is the current time in the specified timezone
	toTime := time.Now().In(a.loc)

	filtered := make(model.ObservationSet, len(set))
	for ts, kg := range set {
		if !ts.Before(fromTime) && !ts.After(toTime) {
			filtered[ts] = kg
		}
	}

	return filtered
}

// applyLimit keeps the newest N observations.
func (a *Analyzer) applyLimit(set model.ObservationSet) model.ObservationSet {
	if a.config.Limit <= 0 || len(set) <= a.config.Limit {
		return set
	}

	util.LogDebug(fmt.Sprintf("Applying observation limit: %d -> %d", len(set), a.config.Limit))
	obs := set.Sorted()
	obs = obs[len(obs)-a.config.Limit:]

	limited := make(model.ObservationSet, len(obs))
	for _, o := range obs {
		limited[o.Timestamp] = o.WeightKg
	}
	return limited
}

func (a *Analyzer) formatAndOutput(report *formatter.Report) error {
	switch a.config.OutputFormat {
	case "json":
		return formatter.NewJSONFormatter().Format(report)
	case "csv":
		return formatter.NewCSVFormatter().Format(report)
	case "summary":
		return formatter.NewSummaryFormatter().Format(report)
	default:
		return formatter.NewTableFormatter().Format(report)
	}
}

func parseDuration(durationStr string, loc *time.Location) (time.Time, error) {
	if durationStr == "" {
		return time.Time{}, nil
	}

	now := time.Now().In(loc)

	// Regular expression to match duration components
	re := regexp.MustCompile(`(\d+)([hymwd])`)
	matches := re.FindAllStringSubmatch(durationStr, -1)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid duration format: %s", durationStr)
	}

	var totalDuration time.Duration

	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid number in duration: %s", match[1])
		}

		unit := match[2]
		switch unit {
		case "h":
			totalDuration += time.Duration(value) * time.Hour
		case "d":
			totalDuration += time.Duration(value) * 24 * time.Hour
		case "w":
			totalDuration += time.Duration(value) * 7 * 24 * time.Hour
		case "m":
			// For months, we approximate as 30 days
			totalDuration += time.Duration(value) * 30 * 24 * time.Hour
		case "y":
			// For years, we approximate as 365 days
			totalDuration += time.Duration(value) * 365 * 24 * time.Hour
		default:
			return time.Time{}, fmt.Errorf("unsupported time unit: %s", unit)
		}
	}

	return now.Add(-totalDuration), nil
}
