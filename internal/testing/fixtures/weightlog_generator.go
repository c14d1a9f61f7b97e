package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-weight-trend/internal/core/constants"
)

// LogSpec describes a synthetic weight export. The generated series is
// deterministic: weight follows StartWeightKg + SlopePerDay * elapsed
// days, with an alternating ±JitterKg offset around the trend.
type LogSpec struct {
	StartDay      time.Time // date of the first header; only the date part is used
	Days          int
	EntriesPerDay int // readings per day starting 06:00, every 4 hours
	StartWeightKg float64
	SlopePerDay   float64
	JitterKg      float64
	NoiseLines    bool // interleave non-weight entries between readings
}

// TestLogGenerator writes synthetic weight export files for tests.
type TestLogGenerator struct {
	baseDir string
}

// NewTestLogGenerator creates a new test log generator
func NewTestLogGenerator(baseDir string) *TestLogGenerator {
	return &TestLogGenerator{
		baseDir: baseDir,
	}
}

// GenerateTrendLog writes an export following spec and returns its path.
func (g *TestLogGenerator) GenerateTrendLog(name string, spec LogSpec) (string, error) {
	if spec.Days <= 0 {
		spec.Days = 1
	}
	if spec.EntriesPerDay <= 0 {
		spec.EntriesPerDay = 1
	}

	var lines []string
	entryIndex := 0
	for day := 0; day < spec.Days; day++ {
		date := spec.StartDay.AddDate(0, 0, day)
		lines = append(lines, date.Format(constants.DateHeaderLayout))

		if spec.NoiseLines {
			lines = append(lines, "05:45 Woke up")
		}

		for i := 0; i < spec.EntriesPerDay; i++ {
			hour := 6 + i*4
			if hour > 23 {
				hour = 23
			}
			elapsedDays := float64(day) + float64(hour)/24
			weight := spec.StartWeightKg + spec.SlopePerDay*elapsedDays
			if spec.JitterKg != 0 {
				if entryIndex%2 == 0 {
					weight += spec.JitterKg
				} else {
					weight -= spec.JitterKg
				}
			}
			entryIndex++
			lines = append(lines, fmt.Sprintf("%02d:00 Weight %.2fkg", hour, weight))

			if spec.NoiseLines {
				lines = append(lines, fmt.Sprintf("%02d:30 Water 500ml", hour))
			}
		}

		if spec.NoiseLines {
			lines = append(lines, "Note: generated entry")
		}
	}

	return g.WriteLines(name, lines)
}

// WriteLines writes raw export lines to a file under the base directory
// and returns the file path.
func (g *TestLogGenerator) WriteLines(name string, lines []string) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(g.baseDir, name)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
