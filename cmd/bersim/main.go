// Command bersim estimates the bit error rate of BPSK, QPSK, and 16-QAM
// over an AWGN channel by Monte-Carlo simulation across an Eb/N0 sweep,
// and writes the resulting table as CSV with optional PNG/HTML charts and
// SQLite persistence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/banshee-data/ber.report/internal/modem"
	"github.com/banshee-data/ber.report/internal/report"
	"github.com/banshee-data/ber.report/internal/store"
	"github.com/banshee-data/ber.report/internal/sweep"
)

func main() {
	schemeList := flag.String("schemes", "bpsk,qpsk,16qam", "Comma-separated modulation schemes to simulate")
	pointList := flag.String("ebn0", "0:14:1", "Eb/N0 points in dB: comma-separated values or start:end:step range")
	bits := flag.Int("bits", 1_000_000, "Data bits simulated per (scheme, Eb/N0) point")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Base seed; every point derives its own generator from it")
	workers := flag.Int("workers", 1, "Concurrent trial workers (1 = serial)")
	output := flag.String("output", "", "Output CSV filename (defaults to ber-<timestamp>.csv)")
	plotFile := flag.String("plot", "", "Optional semi-log BER plot output (PNG/SVG by extension)")
	htmlFile := flag.String("html", "", "Optional interactive HTML chart output")
	dbFile := flag.String("db", "", "Optional SQLite database to persist the run")
	quiet := flag.Bool("quiet", false, "Suppress per-point progress logging")
	flag.Parse()

	schemes, err := parseSchemes(*schemeList)
	if err != nil {
		log.Fatalf("Invalid -schemes: %v", err)
	}

	points, err := sweep.ParsePointList(*pointList)
	if err != nil {
		log.Fatalf("Invalid -ebn0: %v", err)
	}
	if len(points) == 0 {
		log.Fatalf("No Eb/N0 points in %q", *pointList)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name()
	}
	log.Printf("Sweeping %s over %d Eb/N0 points (%g..%g dB), %d bits per point, seed %d",
		strings.Join(names, ", "), len(points), points[0], points[len(points)-1], *bits, *seed)

	result, err := sweep.NewRunner().Run(ctx, sweep.Request{
		Schemes:      schemes,
		EbN0dB:       points,
		BitsPerPoint: *bits,
		Seed:         *seed,
		Workers:      *workers,
		Quiet:        *quiet,
	})
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	for _, s := range sweep.Summarize(result.Records) {
		log.Printf("%s: %d points, %d/%d bit errors, mean BER %.3e, max gap to theory %.3e",
			s.Scheme, s.Points, s.TotalErrors, s.TotalBits, s.MeanBER, s.MaxTheoryGap)
	}

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("ber-%s.csv", time.Now().Format("20060102-150405"))
	}
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Could not create output file %s: %v", filename, err)
	}
	if err := report.WriteCSV(f, result.Records); err != nil {
		f.Close()
		log.Fatalf("Could not write CSV: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Could not close %s: %v", filename, err)
	}
	log.Printf("Results: %s", filename)

	if *plotFile != "" {
		if err := report.SavePlot(result.Records, *plotFile); err != nil {
			log.Fatalf("Could not render plot: %v", err)
		}
		log.Printf("Plot: %s", *plotFile)
	}

	if *htmlFile != "" {
		hf, err := os.Create(*htmlFile)
		if err != nil {
			log.Fatalf("Could not create chart file %s: %v", *htmlFile, err)
		}
		if err := report.RenderHTML(hf, result.Records); err != nil {
			hf.Close()
			log.Fatalf("Could not render chart: %v", err)
		}
		if err := hf.Close(); err != nil {
			log.Fatalf("Could not close %s: %v", *htmlFile, err)
		}
		log.Printf("Chart: %s", *htmlFile)
	}

	if *dbFile != "" {
		st, err := store.Open(*dbFile)
		if err != nil {
			log.Fatalf("Could not open results database: %v", err)
		}
		defer st.Close()

		runID, err := st.SaveRun(strings.Join(names, ","), *bits, *seed, result)
		if err != nil {
			log.Fatalf("Could not persist run: %v", err)
		}
		log.Printf("Run %s saved to %s", runID, *dbFile)
	}

	log.Printf("Sweep complete: %d records in %s", len(result.Records), result.CompletedAt.Sub(result.StartedAt).Round(time.Millisecond))
}

// parseSchemes resolves a comma-separated scheme list, preserving order and
// rejecting duplicates.
func parseSchemes(s string) ([]modem.Scheme, error) {
	parts := strings.Split(s, ",")
	schemes := make([]modem.Scheme, 0, len(parts))
	seen := make(map[string]bool)

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		scheme, err := modem.ByName(p)
		if err != nil {
			return nil, err
		}
		if seen[scheme.Name()] {
			return nil, fmt.Errorf("scheme %s listed twice", scheme.Name())
		}
		seen[scheme.Name()] = true
		schemes = append(schemes, scheme)
	}

	if len(schemes) == 0 {
		return nil, fmt.Errorf("no schemes specified")
	}
	return schemes, nil
}
