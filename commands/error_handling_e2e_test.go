//go:build e2e
// +build e2e

package commands

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/penwyp/go-weight-trend/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMissingFileDiagnostic verifies a missing export produces a printed
// diagnostic and an empty report but still exits 0
func TestMissingFileDiagnostic(t *testing.T) {
	binaryPath := buildBinary(t)
	missing := filepath.Join(t.TempDir(), "nonexistent.txt")

	cmd := exec.Command(binaryPath,
		"--file", missing,
		"--output", "summary",
		"--no-plot")
	output, err := cmd.CombinedOutput()
	outputStr := string(output)

	assert.NoError(t, err, "Missing file must not fail the process: %s", outputStr)
	assert.Contains(t, outputStr, "was not found")
	assert.Contains(t, outputStr, "No data to summarize")
}

// TestEmptyDataDirDiagnostic verifies a directory without exports is
// reported like a file-access failure
func TestEmptyDataDirDiagnostic(t *testing.T) {
	binaryPath := buildBinary(t)

	cmd := exec.Command(binaryPath,
		"--dir", t.TempDir(),
		"--output", "summary",
		"--no-plot")
	output, err := cmd.CombinedOutput()
	outputStr := string(output)

	assert.NoError(t, err, "Empty data dir must not fail the process: %s", outputStr)
	assert.Contains(t, outputStr, "no export files")
	assert.Contains(t, outputStr, "No data to summarize")
}

// TestInsufficientDataExitCode verifies a single-reading export prints
// the report but exits non-zero
func TestInsufficientDataExitCode(t *testing.T) {
	generator := fixtures.NewTestLogGenerator(t.TempDir())
	logPath, err := generator.WriteLines("export.txt", []string{
		"Wed, Nov 06, 2024",
		"06:00 Weight 70.5kg",
	})
	require.NoError(t, err)

	binaryPath := buildBinary(t)

	cmd := exec.Command(binaryPath,
		"--file", logPath,
		"--no-plot")
	output, err := cmd.CombinedOutput()
	outputStr := string(output)

	assert.Error(t, err, "Single observation should exit non-zero")
	assert.Contains(t, outputStr, "two distinct timestamps")
	// The daily report is still printed before the failure surfaces
	assert.Contains(t, outputStr, "2024-11-06")
}

// TestInvalidTimezoneExitCode verifies an unknown timezone is rejected
func TestInvalidTimezoneExitCode(t *testing.T) {
	binaryPath := buildBinary(t)

	cmd := exec.Command(binaryPath, "--timezone", "Not/AZone", "--no-plot")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid timezone")
}
