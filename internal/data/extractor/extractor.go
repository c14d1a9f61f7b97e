package extractor

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-weight-trend/internal/core/constants"
	"github.com/penwyp/go-weight-trend/internal/core/model"
	"github.com/penwyp/go-weight-trend/internal/util"
)

const weightMarker = "Weight"

var (
	timePattern   = regexp.MustCompile(`\b\d{2}:\d{2}\b`)
	weightPattern = regexp.MustCompile(`Weight\s([\d.]+)kg`)
)

// Stats counts what a single extraction pass saw.
type Stats struct {
	LinesScanned       int `json:"lines_scanned"`
	DateHeaders        int `json:"date_headers"`
	WeightEntries      int `json:"weight_entries"`
	Overwrites         int `json:"overwrites"`
	SkippedWeightLines int `json:"skipped_weight_lines"`
	UnrecognizedLines  int `json:"unrecognized_lines"`
	SentinelDated      int `json:"sentinel_dated"`
}

// Extractor parses weight export files into observation sets. Each call
// to ExtractFile is independent; the carried current-date state lives
// inside the call.
type Extractor struct {
	loc *time.Location
}

// NewExtractor creates an Extractor whose timestamps are built in loc.
func NewExtractor(loc *time.Location) *Extractor {
	if loc == nil {
		loc = time.Local
	}
	return &Extractor{loc: loc}
}

// ExtractFile parses the export file at the specified path and returns
// the timestamp→weight mapping. The date context starts at the sentinel
// minimal date and follows date-header lines; weight entries combine the
// current date with their HH:MM token. Later entries overwrite earlier
// ones at the same timestamp.
func (e *Extractor) ExtractFile(path string) (model.ObservationSet, Stats, error) {
	var stats Stats

	util.LogDebug(fmt.Sprintf("Start extracting file: %s", path))

	file, err := os.Open(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to open file: %s - %v", path, err))
		return nil, stats, err
	}
	defer file.Close()

	observations := make(model.ObservationSet)
	sentinel := model.MinimalDate(e.loc)
	currentDate := sentinel

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		stats.LinesScanned++
		line := scanner.Text()

		parsed := e.classifyLine(line)
		switch parsed.Kind {
		case model.LineDateHeader:
			currentDate = parsed.Date
			stats.DateHeaders++
		case model.LineWeightEntry:
			ts := time.Date(currentDate.Year(), currentDate.Month(), currentDate.Day(),
				parsed.Hour, parsed.Minute, 0, 0, e.loc)
			if observations.Record(ts, parsed.WeightKg) {
				stats.Overwrites++
			}
			stats.WeightEntries++
			if currentDate.Equal(sentinel) {
				stats.SentinelDated++
			}
		default:
			if strings.Contains(line, weightMarker) {
				stats.SkippedWeightLines++
				util.LogDebug(fmt.Sprintf("Skip weight line missing tokens %s:%d", path, stats.LinesScanned))
			} else {
				stats.UnrecognizedLines++
			}
		}
	}

	if err := scanner.Err(); err != nil {
		util.LogDebug(fmt.Sprintf("Error scanning file: %s - %v", path, err))
		return nil, stats, err
	}

	util.LogDebug(fmt.Sprintf("Extraction finished: %s lines=%d headers=%d entries=%d",
		path, stats.LinesScanned, stats.DateHeaders, stats.WeightEntries))

	return observations, stats, nil
}

// classifyLine performs the single classification pass over one line. A
// full-line date parse wins; otherwise a line containing the weight
// marker must carry both a valid HH:MM token and a parseable
// "Weight <float>kg" token to count as a weight entry.
func (e *Extractor) classifyLine(line string) model.ParsedLine {
	if date, err := time.ParseInLocation(constants.DateHeaderLayout, line, e.loc); err == nil {
		return model.ParsedLine{Kind: model.LineDateHeader, Date: date}
	}

	if !strings.Contains(line, weightMarker) {
		return model.ParsedLine{Kind: model.LineUnrecognized}
	}

	timeToken := timePattern.FindString(line)
	weightMatch := weightPattern.FindStringSubmatch(line)
	if timeToken == "" || weightMatch == nil {
		return model.ParsedLine{Kind: model.LineUnrecognized}
	}

	hour, _ := strconv.Atoi(timeToken[:2])
	minute, _ := strconv.Atoi(timeToken[3:])
	if hour > 23 || minute > 59 {
		return model.ParsedLine{Kind: model.LineUnrecognized}
	}

	kg, err := strconv.ParseFloat(weightMatch[1], 64)
	if err != nil {
		return model.ParsedLine{Kind: model.LineUnrecognized}
	}

	return model.ParsedLine{Kind: model.LineWeightEntry, Hour: hour, Minute: minute, WeightKg: kg}
}
