package formatter

import (
	"fmt"
	"strings"
)

type TableFormatter struct {
	headers []string
	widths  []int
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{
			"Day", "Readings", "Min (kg)", "Max (kg)",
			"Mean (kg)", "First (kg)", "Last (kg)", "Net (kg)",
		},
	}
}

func (f *TableFormatter) Format(report *Report) error {
	// Calculate optimal column widths based on content
	widths := f.calculateColumnWidths(report.Days)

	// Print top border
	f.printBorder(widths, "top")

	// Print header
	f.printRow(f.headers, widths)

	// Print header separator
	f.printBorder(widths, "middle")

	for _, row := range report.Days {
		f.printRow(f.rowValues(row), widths)
	}

	// Print overall row
	if len(report.Days) > 0 {
		f.printBorder(widths, "middle")
		f.printRow(f.overallValues(report.Days), widths)
	}

	// Print bottom border
	f.printBorder(widths, "bottom")

	return nil
}

func (f *TableFormatter) rowValues(row DailyRow) []string {
	return []string{
		row.Day,
		formatNumber(row.Count),
		formatWeight(row.MinKg),
		formatWeight(row.MaxKg),
		formatWeight(row.MeanKg),
		formatWeight(row.FirstKg),
		formatWeight(row.LastKg),
		formatNet(row.NetKg),
	}
}

// overallValues collapses all day rows into a single trailing row. Mean is
// weighted by per-day reading counts.
func (f *TableFormatter) overallValues(rows []DailyRow) []string {
	totalCount := 0
	minKg := rows[0].MinKg
	maxKg := rows[0].MaxKg
	weightedSum := 0.0

	for _, row := range rows {
		totalCount += row.Count
		if row.MinKg < minKg {
			minKg = row.MinKg
		}
		if row.MaxKg > maxKg {
			maxKg = row.MaxKg
		}
		weightedSum += row.MeanKg * float64(row.Count)
	}

	firstKg := rows[0].FirstKg
	lastKg := rows[len(rows)-1].LastKg

	return []string{
		"Overall",
		formatNumber(totalCount),
		formatWeight(minKg),
		formatWeight(maxKg),
		formatWeight(weightedSum / float64(totalCount)),
		formatWeight(firstKg),
		formatWeight(lastKg),
		formatNet(lastKg - firstKg),
	}
}

// calculateColumnWidths determines optimal width for each column based on content
func (f *TableFormatter) calculateColumnWidths(rows []DailyRow) []int {
	widths := make([]int, len(f.headers))

	// Initialize with header widths
	for i, header := range f.headers {
		widths[i] = len(header)
	}

	// Check data rows
	for _, row := range rows {
		for i, value := range f.rowValues(row) {
			if len(value) > widths[i] {
				widths[i] = len(value)
			}
		}
	}

	// Check the overall row values
	if len(rows) > 0 {
		for i, value := range f.overallValues(rows) {
			if len(value) > widths[i] {
				widths[i] = len(value)
			}
		}
	}

	// Apply minimum widths for readability
	for i := range widths {
		if widths[i] < 8 {
			widths[i] = 8
		}
	}

	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat(separator, width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

// printRow prints a data row, Day left-aligned and numbers right-aligned.
func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		if i == 0 {
			fmt.Printf(" %-*s │", widths[i], value)
		} else {
			fmt.Printf(" %*s │", widths[i], value)
		}
	}
	fmt.Println()
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}

	return string(result)
}

func formatWeight(kg float64) string {
	return fmt.Sprintf("%.2f", kg)
}

func formatNet(kg float64) string {
	return fmt.Sprintf("%+.2f", kg)
}
