package sweep

import "gonum.org/v1/gonum/stat"

// SchemeSummary aggregates the sweep records of one scheme.
type SchemeSummary struct {
	Scheme      string
	Points      int
	TotalErrors int
	TotalBits   int

	// MeanBER and StdDevBER are computed over the per-point simulated BER
	// values, so they describe the sweep table rather than a single channel.
	MeanBER   float64
	StdDevBER float64

	// MaxTheoryGap is the largest |simulated - theoretical| over the
	// scheme's points, a quick sanity signal for curve agreement.
	MaxTheoryGap float64
}

// Summarize groups records by scheme, preserving first-appearance order, and
// computes per-scheme aggregates.
func Summarize(records []Record) []SchemeSummary {
	order := make([]string, 0, 4)
	grouped := make(map[string][]Record)
	for _, rec := range records {
		if _, seen := grouped[rec.Scheme]; !seen {
			order = append(order, rec.Scheme)
		}
		grouped[rec.Scheme] = append(grouped[rec.Scheme], rec)
	}

	summaries := make([]SchemeSummary, 0, len(order))
	for _, name := range order {
		recs := grouped[name]
		s := SchemeSummary{Scheme: name, Points: len(recs)}

		bers := make([]float64, len(recs))
		for i, rec := range recs {
			bers[i] = rec.SimulatedBER
			s.TotalErrors += rec.ErrorCount
			s.TotalBits += rec.TotalBits

			gap := rec.SimulatedBER - rec.TheoreticalBER
			if gap < 0 {
				gap = -gap
			}
			if gap > s.MaxTheoryGap {
				s.MaxTheoryGap = gap
			}
		}

		s.MeanBER, s.StdDevBER = stat.MeanStdDev(bers, nil)
		if len(bers) < 2 {
			s.StdDevBER = 0
		}
		summaries = append(summaries, s)
	}
	return summaries
}
