package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/ber.report/internal/sweep"
)

// RenderHTML writes an interactive BER chart as a standalone HTML page. The
// Y axis is logarithmic, so zero-BER points are emitted as missing values
// rather than breaking the scale.
func RenderHTML(w io.Writer, records []sweep.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to chart")
	}

	xLabels, index := ebN0Axis(records)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "BER Performance over AWGN",
			Theme:     "dark",
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "BER vs Eb/N0",
			Subtitle: fmt.Sprintf("%d sweep points", len(records)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Eb/N0 (dB)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "BER", Type: "log"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
	)
	line.SetXAxis(xLabels)

	for _, name := range schemeOrder(records) {
		sim := make([]opts.LineData, len(xLabels))
		theory := make([]opts.LineData, len(xLabels))
		for i := range xLabels {
			sim[i] = opts.LineData{Value: "-"}
			theory[i] = opts.LineData{Value: "-"}
		}

		for _, rec := range records {
			if rec.Scheme != name {
				continue
			}
			i := index[rec.EbN0dB]
			if rec.SimulatedBER > 0 {
				sim[i] = opts.LineData{Value: rec.SimulatedBER}
			}
			theory[i] = opts.LineData{Value: rec.TheoreticalBER}
		}

		line.AddSeries("Simulated "+name, sim,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
		line.AddSeries("Theoretical "+name, theory,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// ebN0Axis collects the distinct Eb/N0 values in first-appearance order and
// returns printable labels plus a value-to-column index.
func ebN0Axis(records []sweep.Record) ([]string, map[float64]int) {
	var labels []string
	index := make(map[float64]int)
	for _, rec := range records {
		if _, seen := index[rec.EbN0dB]; !seen {
			index[rec.EbN0dB] = len(labels)
			labels = append(labels, fmt.Sprintf("%g", rec.EbN0dB))
		}
	}
	return labels, index
}
