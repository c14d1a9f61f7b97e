package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-weight-trend/internal/analyzer"
	"github.com/penwyp/go-weight-trend/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Logging related
	debug bool

	// Input data
	inputFile string
	dataDir   string

	// Plot output
	plotFile string
	noPlot   bool

	// Output related
	outputFormat string
	timezone     string

	// Filtering
	duration string
	limit    int

	rootCmd = &cobra.Command{
		Use:   "go-weight-trend [flags]",
		Short: "Weight log trend analysis tool",
		Long: `go-weight-trend is a command-line tool for analyzing weight measurements
recorded in semi-structured log exports.

The tool parses date headers and "HH:MM Weight <value>kg" entries, fits a
linear regression over the readings, prints a daily report, and renders a
scatter plot with the fitted trend line.

Examples:
  go-weight-trend                                  # Analyze the newest export under ./log
  go-weight-trend --file export.txt                # Analyze a specific export file
  go-weight-trend --output json                    # Output the report in JSON format
  go-weight-trend --duration 90d                   # Analyze the last 90 days
  go-weight-trend --duration 12w --output summary  # Last 12 weeks, summary report
  go-weight-trend --no-plot                        # Skip rendering the PNG plot`,
		RunE: runAnalyze,
	}
)

const (
	defaultLogFile  = "~/.go-weight-trend/logs/app.log"
	defaultDataDir  = "./log"
	defaultPlotFile = "weight_data_plot.png"
)

func init() {
	cobra.OnInitialize(initConfig)

	// Input data configuration
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "",
		"Weight log export file (empty = newest .txt under --dir)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", defaultDataDir,
		"Directory scanned for export files")

	// Plot configuration
	rootCmd.Flags().StringVarP(&plotFile, "plot", "p", defaultPlotFile,
		"Output PNG file for the regression plot")
	rootCmd.Flags().BoolVar(&noPlot, "no-plot", false,
		"Skip rendering the plot")

	// Time filtering
	rootCmd.Flags().StringVarP(&duration, "duration", "d", "",
		"Time duration to look back (e.g., 12h, 7d, 2w, 1m, 3m2w1d)")
	rootCmd.Flags().IntVar(&limit, "limit", 0,
		"Keep only the N most recent observations (0 = all)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.Flags().StringVar(&outputFormat, "format", "",
		"Alias for --output")
	rootCmd.Flags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// initConfig wires the optional config file and environment variables.
// Values from either apply only where the matching flag was left at its
// default on the command line.
func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetConfigName(".go-weight-trend")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("GWT")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// applyConfigFallbacks fills flag variables from viper for every flag the
// user did not set explicitly.
func applyConfigFallbacks(cmd *cobra.Command) {
	stringFallback(cmd, "file", &inputFile)
	stringFallback(cmd, "dir", &dataDir)
	stringFallback(cmd, "plot", &plotFile)
	stringFallback(cmd, "output", &outputFormat)
	stringFallback(cmd, "timezone", &timezone)
	stringFallback(cmd, "duration", &duration)
	if !cmd.Flags().Changed("limit") && viper.IsSet("limit") {
		limit = viper.GetInt("limit")
	}
}

func stringFallback(cmd *cobra.Command, name string, target *string) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if !flag.Changed && viper.IsSet(name) {
		*target = viper.GetString(name)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Determine log level based on debug flag
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	// Handle format alias
	if format := cmd.Flags().Lookup("format"); format != nil && format.Changed {
		outputFormat = format.Value.String()
	}

	// Config file and environment fallbacks for unset flags
	applyConfigFallbacks(cmd)

	// Initialize logging
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
	if err := util.InitializeTimeProvider(timezone); err != nil {
		return err
	}

	// Expand paths
	if inputFile != "" {
		inputFile = expandPath(inputFile)
	}
	dataDir = expandPath(dataDir)

	// Create analyzer config
	config := &analyzer.Config{
		LogFile:      inputFile,
		DataDir:      dataDir,
		PlotFile:     plotFile,
		NoPlot:       noPlot,
		OutputFormat: outputFormat,
		Timezone:     timezone,
		Duration:     duration,
		Limit:        limit,
	}

	// Create and run analyzer
	a := analyzer.New(config)
	return a.Run()
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
