// Package export writes the computed load-duration tables to CSV for
// spreadsheet review. Undefined fields become empty cells, never zeros.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/crestgauge/loadduration/internal/ldc"
)

// WriteRegimeCSV writes the five-row regime summary table.
func WriteRegimeCSV(w io.Writer, summaries []ldc.RegimeSummary) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Regime", "Representative_Exceedance", "Representative_Flow_cfs",
		"Geomean_Concentration", "Representative_Load_per_day", "Flow_Count", "Sample_Count"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		record := []string{
			string(s.Regime),
			fmt.Sprintf("%.2f", s.RepresentativeExceedance),
			formatOptional(s.RepresentativeFlow, "%.3f"),
			formatOptional(s.GeomeanConcentration, "%.2f"),
			formatOptional(s.RepresentativeLoad, "%.6g"),
			fmt.Sprintf("%d", s.FlowCount),
			fmt.Sprintf("%d", s.SampleCount),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCurveCSV writes the per-day load table.
func WriteCurveCSV(w io.Writer, curve []ldc.LoadRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Date", "Flow_cfs", "Exceedance", "Flow_Condition",
		"Allowable_Load_per_day", "Concentration", "Measured_Load_per_day"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range curve {
		record := []string{
			r.Date.Format("2006-01-02"),
			fmt.Sprintf("%.3f", r.Flow),
			fmt.Sprintf("%.6f", r.Exceedance),
			string(r.FlowCondition),
			fmt.Sprintf("%.6g", r.AllowableLoad),
			formatOptional(r.Concentration, "%.2f"),
			formatOptional(r.MeasuredLoad, "%.6g"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteRegimeFile writes the regime summary to a file path.
func WriteRegimeFile(path string, summaries []ldc.RegimeSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteRegimeCSV(f, summaries)
}

// WriteCurveFile writes the load table to a file path.
func WriteCurveFile(path string, curve []ldc.LoadRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCurveCSV(f, curve)
}

func formatOptional(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}
