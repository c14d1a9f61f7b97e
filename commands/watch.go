package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/penwyp/go-weight-trend/internal/analyzer"
	"github.com/penwyp/go-weight-trend/internal/application/watch"
	"github.com/penwyp/go-weight-trend/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Refresh related flags
	watchInterval time.Duration

	// Display related flags
	watchTimezone string

	// Plot related flags
	watchPlotFile string
	watchNoPlot   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the weight log in real-time",
	Long: `Runs the analysis once, then re-runs it whenever the log file changes,
with a live terminal view of the current trend.

Each refresh is a full re-parse and re-fit of the log file. The plot is
re-rendered on every refresh unless --no-plot is given.

Keys: q quits, r forces a refresh.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	// Refresh flags
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second,
		"Minimum delay between refreshes after a file change")

	// Display flags
	watchCmd.Flags().StringVar(&watchTimezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")

	// Plot flags
	watchCmd.Flags().StringVarP(&watchPlotFile, "plot", "p", defaultPlotFile,
		"Output PNG file re-rendered on every refresh")
	watchCmd.Flags().BoolVar(&watchNoPlot, "no-plot", false,
		"Skip re-rendering the plot on refresh")
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Handle debug mode (inherited from root command)
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	// Initialize logging (reuse root logic)
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
	if err := util.InitializeTimeProvider(watchTimezone); err != nil {
		return err
	}

	if err := validateWatchInterval(watchInterval); err != nil {
		return err
	}

	// Create configuration. Watch mode never prints the console report;
	// the live view replaces it.
	config := &analyzer.Config{
		LogFile:  inputFile,
		DataDir:  expandPath(dataDir),
		PlotFile: watchPlotFile,
		NoPlot:   watchNoPlot,
		Timezone: watchTimezone,
	}
	if config.LogFile != "" {
		config.LogFile = expandPath(config.LogFile)
	}

	runner := watch.NewRunner(analyzer.New(config), &watch.Config{
		Interval:   watchInterval,
		RenderPlot: !watchNoPlot,
	})

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		cancel()
	}()

	// Run main loop
	return runner.Run(ctx)
}

// validateWatchInterval bounds the refresh debounce window.
func validateWatchInterval(interval time.Duration) error {
	if interval < 100*time.Millisecond || interval > time.Hour {
		return fmt.Errorf("interval must be between 100ms and 1h, got %v", interval)
	}
	return nil
}
