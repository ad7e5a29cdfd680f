package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/ber.report/internal/sweep"
)

// schemePalette provides one distinct colour per plotted scheme, reused for
// both the simulated markers and the theoretical line of that scheme.
var schemePalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
}

// SavePlot renders the classic semi-log BER-vs-Eb/N0 figure: simulated BER
// as markers and the theoretical curve as a line, one colour per scheme,
// with a logarithmic Y axis. Points with zero simulated BER cannot appear on
// a log axis and are omitted from the markers; the record table keeps them.
func SavePlot(records []sweep.Record, path string) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to plot")
	}

	p := plot.New()
	p.Title.Text = "BER Performance over AWGN"
	p.X.Label.Text = "Eb/N0 (dB)"
	p.Y.Label.Text = "Bit Error Rate"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, name := range schemeOrder(records) {
		clr := schemePalette[i%len(schemePalette)]

		simPts := make(plotter.XYs, 0)
		theoryPts := make(plotter.XYs, 0)
		for _, rec := range records {
			if rec.Scheme != name {
				continue
			}
			if rec.SimulatedBER > 0 {
				simPts = append(simPts, plotter.XY{X: rec.EbN0dB, Y: rec.SimulatedBER})
			}
			if rec.TheoreticalBER > 0 {
				theoryPts = append(theoryPts, plotter.XY{X: rec.EbN0dB, Y: rec.TheoreticalBER})
			}
		}

		if len(simPts) > 0 {
			scatter, err := plotter.NewScatter(simPts)
			if err != nil {
				return fmt.Errorf("simulated series %s: %w", name, err)
			}
			scatter.Color = clr
			scatter.Radius = vg.Points(2.5)
			p.Add(scatter)
			p.Legend.Add("Simulated "+name, scatter)
		}

		if len(theoryPts) > 0 {
			line, err := plotter.NewLine(theoryPts)
			if err != nil {
				return fmt.Errorf("theoretical series %s: %w", name, err)
			}
			line.Color = clr
			line.Width = vg.Points(1)
			p.Add(line)
			p.Legend.Add("Theoretical "+name, line)
		}
	}

	if err := p.Save(10*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// schemeOrder returns the scheme names in first-appearance order.
func schemeOrder(records []sweep.Record) []string {
	var order []string
	seen := make(map[string]bool)
	for _, rec := range records {
		if !seen[rec.Scheme] {
			seen[rec.Scheme] = true
			order = append(order, rec.Scheme)
		}
	}
	return order
}
