package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{
		"Day", "Readings", "Min (kg)", "Max (kg)",
		"Mean (kg)", "First (kg)", "Last (kg)", "Net (kg)",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range report.Days {
		record := []string{
			row.Day,
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.2f", row.MinKg),
			fmt.Sprintf("%.2f", row.MaxKg),
			fmt.Sprintf("%.2f", row.MeanKg),
			fmt.Sprintf("%.2f", row.FirstKg),
			fmt.Sprintf("%.2f", row.LastKg),
			fmt.Sprintf("%+.2f", row.NetKg),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
