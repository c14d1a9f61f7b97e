//go:build e2e
// +build e2e

package commands

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-weight-trend/internal/presentation/formatter"
	"github.com/penwyp/go-weight-trend/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// buildBinary compiles the CLI once per test into a temp location.
func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "go-weight-trend")
	buildCmd := exec.Command("go", "build", "-o", binaryPath, "..")
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "Failed to build binary: %s", string(output))
	return binaryPath
}

// TestRootCommandBasicAnalysis tests the main analysis pipeline end to end
func TestRootCommandBasicAnalysis(t *testing.T) {
	tempDir := t.TempDir()
	generator := fixtures.NewTestLogGenerator(tempDir)

	logPath, err := generator.GenerateTrendLog("export.txt", fixtures.LogSpec{
		StartDay:      time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC),
		Days:          7,
		EntriesPerDay: 2,
		StartWeightKg: 71.0,
		SlopePerDay:   -0.1,
		NoiseLines:    true,
	})
	require.NoError(t, err)

	binaryPath := buildBinary(t)
	plotPath := filepath.Join(tempDir, "plot.png")

	cmd := exec.Command(binaryPath,
		"--file", logPath,
		"--plot", plotPath,
		"--timezone", "UTC")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "Command should succeed: %s", string(output))
	outputStr := string(output)

	// Verify table output contains expected elements
	assert.Contains(t, outputStr, "Day")
	assert.Contains(t, outputStr, "Mean (kg)")
	assert.Contains(t, outputStr, "2024-11-06")
	assert.Contains(t, outputStr, "2024-11-12")

	// Verify the rendered plot is a PNG
	plotData, err := os.ReadFile(plotPath)
	require.NoError(t, err, "Plot file should exist")
	require.Greater(t, len(plotData), len(pngSignature))
	assert.Equal(t, pngSignature, plotData[:len(pngSignature)])
}

// TestRootCommandSlopeRecovery verifies a generated series fits back to
// its known daily slope
func TestRootCommandSlopeRecovery(t *testing.T) {
	tempDir := t.TempDir()
	generator := fixtures.NewTestLogGenerator(tempDir)

	const wantSlope = -0.12
	logPath, err := generator.GenerateTrendLog("export.txt", fixtures.LogSpec{
		StartDay:      time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		Days:          14,
		EntriesPerDay: 2,
		StartWeightKg: 74.5,
		SlopePerDay:   wantSlope,
		JitterKg:      0.05,
	})
	require.NoError(t, err)

	binaryPath := buildBinary(t)

	cmd := exec.Command(binaryPath,
		"--file", logPath,
		"--output", "json",
		"--no-plot",
		"--timezone", "UTC")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "Command should succeed: %s", string(output))

	var report formatter.Report
	require.NoError(t, json.Unmarshal(output, &report), "Output should be valid JSON: %s", string(output))

	assert.Len(t, report.Days, 14)
	assert.Equal(t, 28, report.WeightEntries)
	require.NotNil(t, report.Trend)
	assert.InDelta(t, wantSlope, report.Trend.SlopeKgPerDay, 0.02)
	assert.Equal(t, 28, report.Trend.Observations)
}

// TestRootCommandOutputFormats tests the remaining output formats
func TestRootCommandOutputFormats(t *testing.T) {
	tempDir := t.TempDir()
	generator := fixtures.NewTestLogGenerator(tempDir)

	logPath, err := generator.GenerateTrendLog("export.txt", fixtures.LogSpec{
		StartDay:      time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC),
		Days:          3,
		EntriesPerDay: 2,
		StartWeightKg: 70.0,
		SlopePerDay:   -0.05,
	})
	require.NoError(t, err)

	binaryPath := buildBinary(t)

	testCases := []struct {
		name           string
		format         string
		expectedChecks []string
	}{
		{
			name:   "CSV format",
			format: "csv",
			expectedChecks: []string{
				"Day,Readings,Min (kg)",
				"2024-11-06",
				"2024-11-08",
			},
		},
		{
			name:   "Summary format",
			format: "summary",
			expectedChecks: []string{
				"Weight Trend Summary Report",
				"Date Range: 2024-11-06 to 2024-11-08",
				"Weight Entries: 6",
				"Slope:",
			},
		},
		{
			name:   "Table format (default)",
			format: "table",
			expectedChecks: []string{
				"Day",
				"Readings",
				"Net (kg)",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath,
				"--file", logPath,
				"--output", tc.format,
				"--no-plot",
				"--timezone", "UTC")
			output, err := cmd.CombinedOutput()

			assert.NoError(t, err, "Command should succeed for %s format: %s", tc.format, string(output))
			outputStr := string(output)

			for _, expected := range tc.expectedChecks {
				assert.Contains(t, outputStr, expected, "Output should contain %s for %s format", expected, tc.format)
			}
		})
	}
}

// TestRootCommandDirScan verifies the newest export under --dir is picked
// when no --file is given
func TestRootCommandDirScan(t *testing.T) {
	tempDir := t.TempDir()
	generator := fixtures.NewTestLogGenerator(tempDir)

	_, err := generator.WriteLines("old.txt", []string{
		"Mon, Oct 07, 2024",
		"06:00 Weight 75.0kg",
		"21:00 Weight 74.8kg",
	})
	require.NoError(t, err)

	newPath, err := generator.WriteLines("new.txt", []string{
		"Wed, Nov 06, 2024",
		"06:00 Weight 70.5kg",
		"21:00 Weight 70.1kg",
	})
	require.NoError(t, err)

	// Make sure the second export is strictly newer
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(newPath, future, future))

	binaryPath := buildBinary(t)

	cmd := exec.Command(binaryPath,
		"--dir", tempDir,
		"--output", "json",
		"--no-plot",
		"--timezone", "UTC")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "Command should succeed: %s", string(output))

	var report formatter.Report
	require.NoError(t, json.Unmarshal(output, &report))
	assert.Equal(t, newPath, report.Source)
	require.Len(t, report.Days, 1)
	assert.Equal(t, "2024-11-06", report.Days[0].Day)
}
