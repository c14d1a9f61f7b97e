package commands

import (
	"fmt"
	"path/filepath"

	"github.com/penwyp/go-weight-trend/internal/analyzer"
	"github.com/penwyp/go-weight-trend/internal/core/constants"
	"github.com/penwyp/go-weight-trend/internal/core/model"
	"github.com/penwyp/go-weight-trend/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Inspect command flags
	inspectTimezone string
	inspectLimit    int
)

var inspectCmd = &cobra.Command{
	Use:    "inspect",
	Short:  "Debug command to dump extraction diagnostics",
	Long:   `Parses the weight log and prints extraction counters and resolved observations without fitting or plotting.`,
	Hidden: true, // Hidden from help
	RunE:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	// Display flags
	inspectCmd.Flags().StringVar(&inspectTimezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 10,
		"Observations to show from each end of the range (0 = all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	// Handle debug mode (inherited from root command)
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	// Initialize logging (reuse root logic)
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
	if err := util.InitializeTimeProvider(inspectTimezone); err != nil {
		return err
	}

	config := &analyzer.Config{
		LogFile:  inputFile,
		DataDir:  expandPath(dataDir),
		NoPlot:   true,
		Timezone: inspectTimezone,
	}
	if config.LogFile != "" {
		config.LogFile = expandPath(config.LogFile)
	}

	a := analyzer.New(config)
	analysis := a.Analyze()

	fmt.Println(util.FormatSectionSeparator())
	fmt.Println(util.FormatHeaderTitle("=== Weight Log Inspection ==="))
	fmt.Printf("Timestamp: %s\n", util.GetTimeProvider().Now().Format("2006-01-02 15:04:05 MST"))
	if analysis.Source != "" {
		fmt.Printf("Source: %s\n", analysis.Source)
	}
	fmt.Printf("Timezone: %s\n", inspectTimezone)
	fmt.Println(util.FormatSectionSeparator())

	if analysis.SourceError != nil {
		fmt.Printf("Source error: %v\n", analysis.SourceError)
		fmt.Println(util.FormatSectionSeparator())
		return nil
	}

	printExtractionStats(analysis)
	fmt.Println(util.FormatSectionSeparator())

	printObservations(analysis.Set.Sorted(), inspectLimit)
	fmt.Println(util.FormatSectionSeparator())

	printTrend(analysis)
	fmt.Println(util.FormatSectionSeparator())

	return nil
}

func printExtractionStats(analysis *analyzer.Analysis) {
	stats := analysis.Stats

	fmt.Println(util.FormatDiagnosticTitle("=== Extraction Counters ==="))
	fmt.Printf("Lines Scanned: %d\n", stats.LinesScanned)
	fmt.Printf("Date Headers: %d\n", stats.DateHeaders)
	fmt.Printf("Weight Entries: %d\n", stats.WeightEntries)
	fmt.Printf("Overwritten Readings: %d\n", stats.Overwrites)
	fmt.Printf("Skipped Weight Lines: %d\n", stats.SkippedWeightLines)
	fmt.Printf("Unrecognized Lines: %d\n", stats.UnrecognizedLines)

	if stats.SentinelDated > 0 {
		fmt.Printf("\n⚠️  %d reading(s) preceded any date header and carry the sentinel date\n",
			stats.SentinelDated)
	}
}

func printObservations(obs []model.Observation, limit int) {
	fmt.Println(util.FormatDataTitle("=== Observations ==="))
	fmt.Printf("Total: %d\n", len(obs))

	if len(obs) == 0 {
		return
	}

	if limit <= 0 || len(obs) <= 2*limit {
		fmt.Println()
		for _, o := range obs {
			printObservation(o)
		}
		return
	}

	fmt.Println()
	for _, o := range obs[:limit] {
		printObservation(o)
	}
	fmt.Printf("  ... %d more ...\n", len(obs)-2*limit)
	for _, o := range obs[len(obs)-limit:] {
		printObservation(o)
	}
}

func printObservation(o model.Observation) {
	fmt.Printf("  %s  %s\n", o.Timestamp.Format("2006-01-02 15:04"), util.FormatWeight(o.WeightKg))
}

func printTrend(analysis *analyzer.Analysis) {
	fmt.Println(util.FormatOverviewTitle("=== Trend ==="))

	if analysis.Fit == nil {
		if analysis.FitError != nil {
			fmt.Printf("No fit: %v\n", analysis.FitError)
		} else {
			fmt.Println("No fit")
		}
		return
	}

	fit := analysis.Fit
	fmt.Printf("Slope: %s\n", util.FormatSlope(fit.SlopePerDay()))
	fmt.Printf("R²: %.4f\n", fit.RSquared)
	fmt.Printf("Observations: %d\n", fit.Observations)
	fmt.Printf("Range: %s to %s (%s)\n",
		fit.Start.Format("2006-01-02 15:04"),
		fit.End.Format("2006-01-02 15:04"),
		util.FormatDuration(fit.Span()))
	fmt.Printf("Fitted Latest: %s\n", util.FormatWeight(fit.PredictAt(fit.End)))
	fmt.Printf("Projected +%dd: %s\n", constants.ProjectionDays,
		util.FormatWeight(fit.PredictAt(fit.End.Add(constants.ProjectionDuration))))
}
