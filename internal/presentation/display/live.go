package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/penwyp/go-weight-trend/internal/presentation/formatter"
	"github.com/penwyp/go-weight-trend/internal/presentation/layout"
	"github.com/penwyp/go-weight-trend/internal/util"
)

const recentDayRows = 7

var (
	styleTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true) // cyan bold
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))           // gray
	styleValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleLosing  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleGaining = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	styleFlat    = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

// LiveView paints the watch-mode dashboard on the alternate screen.
type LiveView struct {
	inAlternateScreen bool
	lastFrameLines    int
}

func NewLiveView() *LiveView {
	return &LiveView{}
}

// EnterAlternateScreen switches to the alternate buffer and hides the cursor.
func (v *LiveView) EnterAlternateScreen() {
	if v.inAlternateScreen {
		return
	}
	fmt.Print(util.EnterAltScreen)
	fmt.Print(util.ClearScreen)
	fmt.Print(util.MoveCursorHome)
	fmt.Print(util.HideCursor)
	v.inAlternateScreen = true
}

// ExitAlternateScreen restores the normal buffer and cursor.
func (v *LiveView) ExitAlternateScreen() {
	if !v.inAlternateScreen {
		return
	}
	fmt.Print(util.ClearScreen)
	fmt.Print(util.MoveCursorHome)
	fmt.Print(util.ShowCursor)
	fmt.Print(util.ExitAltScreen)
	v.inAlternateScreen = false
}

// Render paints a full frame for the report. Lines are padded to the full
// width so the previous frame never shows through.
func (v *LiveView) Render(report *formatter.Report, updatedAt time.Time) {
	width := layout.MaxWidth()
	lines := v.buildFrame(report, updatedAt, width)

	// Blank out rows left over from a taller previous frame.
	for len(lines) < v.lastFrameLines {
		lines = append(lines, "")
	}
	v.lastFrameLines = len(lines)

	var b strings.Builder
	b.WriteString(util.MoveCursorHome)
	for _, line := range lines {
		b.WriteString(layout.PadString(line, width, true))
		b.WriteString("\n")
	}
	fmt.Print(b.String())
}

func (v *LiveView) buildFrame(report *formatter.Report, updatedAt time.Time, width int) []string {
	separator := strings.Repeat("─", width)

	lines := []string{
		styleTitle.Render("Weight Trend Watch"),
		separator,
	}

	lines = append(lines, fmt.Sprintf("%s %s",
		styleLabel.Render("Source:"),
		styleValue.Render(report.Source)))
	lines = append(lines, fmt.Sprintf("%s %s   %s %s   %s %s",
		styleLabel.Render("Updated:"),
		styleValue.Render(updatedAt.Format("15:04:05")),
		styleLabel.Render("Readings:"),
		styleValue.Render(fmt.Sprintf("%d", report.WeightEntries)),
		styleLabel.Render("Days:"),
		styleValue.Render(fmt.Sprintf("%d", len(report.Days)))))
	lines = append(lines, "")

	if len(report.Days) == 0 {
		lines = append(lines,
			styleFlat.Render("No weight entries yet"),
			"",
			styleHint.Render("[q] quit  [r] refresh"))
		return lines
	}

	latest := report.Days[len(report.Days)-1]
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
	netKg := latest.LastKg - report.Days[0].FirstKg

	lines = append(lines, fmt.Sprintf("%s %s %s",
		styleLabel.Render("Latest:"),
		styleValue.Render(util.FormatWeight(latest.LastKg)),
		styleLabel.Render("("+latest.Day+")")))
	lines = append(lines, fmt.Sprintf("%s %s .. %s",
		styleLabel.Render("Range:"),
		styleValue.Render(util.FormatWeight(minKg)),
		styleValue.Render(util.FormatWeight(maxKg))))
	lines = append(lines, fmt.Sprintf("%s %s",
		styleLabel.Render("Net Change:"),
		slopeStyle(netKg).Render(util.FormatChange(netKg))))
	lines = append(lines, "")

	if report.Trend != nil {
		t := report.Trend
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styleLabel.Render("Trend:"),
			slopeStyle(t.SlopeKgPerDay).Render(util.FormatSlope(t.SlopeKgPerDay)),
			styleLabel.Render(fmt.Sprintf("(R²=%.4f)", t.RSquared))))
		lines = append(lines, fmt.Sprintf("%s %s",
			styleLabel.Render("Projected (+30 days):"),
			styleValue.Render(util.FormatWeight(t.ProjectedKg))))
	} else {
		lines = append(lines, styleFlat.Render("Not enough data to fit a trend"))
	}
	lines = append(lines, "")

	lines = append(lines, styleLabel.Render("Recent Days:"))
	start := len(report.Days) - recentDayRows
	if start < 0 {
		start = 0
	}
	lines = append(lines, styleLabel.Render(fmt.Sprintf("  %-12s %8s %9s %9s", "Day", "Readings", "Mean", "Net")))
	for _, row := range report.Days[start:] {
		lines = append(lines, styleValue.Render(
			fmt.Sprintf("  %-12s %8d %9.2f %+9.2f", row.Day, row.Count, row.MeanKg, row.NetKg)))
	}
	lines = append(lines, "")
	lines = append(lines, styleHint.Render("[q] quit  [r] refresh"))

	return lines
}

// slopeStyle picks the trend color: losing weight renders green, gaining
// red, near-flat yellow.
func slopeStyle(perDay float64) lipgloss.Style {
	switch {
	case perDay < -0.001:
		return styleLosing
	case perDay > 0.001:
		return styleGaining
	default:
		return styleFlat
	}
}
