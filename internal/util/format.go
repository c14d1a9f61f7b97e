package util

import (
	"fmt"
	"time"
)

// Helper functions
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatWeight renders a weight in kilograms for report output.
func FormatWeight(kg float64) string {
	return fmt.Sprintf("%.2f kg", kg)
}

// FormatSlope renders a daily trend slope with an explicit sign.
func FormatSlope(kgPerDay float64) string {
	return fmt.Sprintf("%+.3f kg/day", kgPerDay)
}

// FormatChange renders a net weight change with an explicit sign.
func FormatChange(kg float64) string {
	return fmt.Sprintf("%+.2f kg", kg)
}

func FormatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
