package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	formatter := NewJSONFormatter()
	if formatter == nil {
		t.Fatal("NewJSONFormatter returned nil")
	}
}

func TestJSONFormatterFormat(t *testing.T) {
	formatter := NewJSONFormatter()

	report := &Report{
		Source:   "log/2024-11.txt",
		Timezone: "UTC",
		Days: []DailyRow{
			{Day: "2024-11-06", Count: 2, MinKg: 71.8, MaxKg: 72.4, MeanKg: 72.1, FirstKg: 72.4, LastKg: 71.8, NetKg: -0.6},
			{Day: "2024-12-14", Count: 1, MinKg: 70.9, MaxKg: 70.9, MeanKg: 70.9, FirstKg: 70.9, LastKg: 70.9, NetKg: 0},
		},
		Trend: &TrendInfo{
			SlopeKgPerDay: -0.05,
			InterceptKg:   75.31,
			RSquared:      0.9987,
			Observations:  3,
			Start:         "2024-11-06T07:00:00Z",
			End:           "2024-12-14T09:15:00Z",
			SpanDays:      38.09,
			FittedLastKg:  70.92,
			ProjectedKg:   69.42,
		},
		PlotFile:      "weight_data_plot.png",
		LinesScanned:  120,
		WeightEntries: 3,
		Overwrites:    1,
		SkippedLines:  2,
	}

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := formatter.Format(report)

	w.Close()
	buf := new(bytes.Buffer)
	io.Copy(buf, r)
	os.Stdout = old

	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	// Verify valid JSON round-trips losslessly
	var result Report
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if result.Source != report.Source {
		t.Errorf("Source mismatch, got %s, want %s", result.Source, report.Source)
	}
	if len(result.Days) != len(report.Days) {
		t.Fatalf("Expected %d day rows, got %d", len(report.Days), len(result.Days))
	}
	if result.Days[0].Day != "2024-11-06" {
		t.Errorf("Day mismatch, got %s", result.Days[0].Day)
	}
	if result.Days[0].NetKg != -0.6 {
		t.Errorf("NetKg mismatch, got %f", result.Days[0].NetKg)
	}
	if result.Trend == nil {
		t.Fatal("Expected trend to survive round-trip")
	}
	if result.Trend.SlopeKgPerDay != -0.05 {
		t.Errorf("SlopeKgPerDay mismatch, got %f", result.Trend.SlopeKgPerDay)
	}
	if result.WeightEntries != 3 {
		t.Errorf("WeightEntries mismatch, got %d", result.WeightEntries)
	}
}

func TestJSONFormatterOmitsNilTrend(t *testing.T) {
	formatter := NewJSONFormatter()

	report := &Report{
		Source: "log/2024-11.txt",
		Days:   []DailyRow{},
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := formatter.Format(report)

	w.Close()
	buf := new(bytes.Buffer)
	io.Copy(buf, r)
	os.Stdout = old

	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	if strings.Contains(buf.String(), `"trend"`) {
		t.Errorf("Expected nil trend to be omitted, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), `"plot_file"`) {
		t.Errorf("Expected empty plot file to be omitted, got:\n%s", buf.String())
	}
}

func TestJSONFormatterSpecialCharacters(t *testing.T) {
	formatter := NewJSONFormatter()

	report := &Report{
		Source: `log/export "2024" \ 体重.txt`,
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := formatter.Format(report)

	w.Close()
	buf := new(bytes.Buffer)
	io.Copy(buf, r)
	os.Stdout = old

	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	var result Report
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if result.Source != report.Source {
		t.Errorf("Source special characters not preserved: got %q, want %q", result.Source, report.Source)
	}
}
