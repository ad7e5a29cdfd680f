// Package report renders a sweep's BER record table for human consumption:
// CSV for spreadsheets, a semi-log PNG plot, and an interactive HTML chart.
// All sinks consume the finished table; none of them feeds back into the
// simulation core.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/ber.report/internal/sweep"
)

// WriteCSV writes the record table with one row per (scheme, Eb/N0) point,
// preserving table order.
func WriteCSV(w io.Writer, records []sweep.Record) error {
	cw := csv.NewWriter(w)

	header := []string{"scheme", "eb_n0_db", "simulated_ber", "theoretical_ber", "error_count", "total_bits", "low_confidence"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Scheme,
			strconv.FormatFloat(rec.EbN0dB, 'g', -1, 64),
			fmt.Sprintf("%.6e", rec.SimulatedBER),
			fmt.Sprintf("%.6e", rec.TheoreticalBER),
			strconv.Itoa(rec.ErrorCount),
			strconv.Itoa(rec.TotalBits),
			strconv.FormatBool(rec.LowConfidence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
