package sweep

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/banshee-data/ber.report/internal/link"
	"github.com/banshee-data/ber.report/internal/modem"
	"github.com/banshee-data/ber.report/internal/theory"
)

// DefaultMinExpectedErrors is the expected-error threshold below which a
// point's BER estimate is flagged as statistically weak.
const DefaultMinExpectedErrors = 100

// Request defines one sweep: which schemes to run, the Eb/N0 points in dB,
// and how many data bits to simulate per point.
type Request struct {
	Schemes      []modem.Scheme
	EbN0dB       []float64
	BitsPerPoint int

	// Seed is the base seed; every (scheme, point) trial derives its own
	// generator from it, so results are independent of execution order.
	Seed int64

	// Workers > 1 runs trials concurrently. The record table is always
	// assembled in the documented order regardless of worker count.
	Workers int

	// MinExpectedErrors overrides DefaultMinExpectedErrors when positive.
	MinExpectedErrors int

	// Quiet suppresses per-point progress logging.
	Quiet bool
}

// Record is one row of the sweep result table. Records are immutable once
// computed.
type Record struct {
	Scheme         string  `json:"scheme"`
	EbN0dB         float64 `json:"eb_n0_db"`
	SimulatedBER   float64 `json:"simulated_ber"`
	TheoreticalBER float64 `json:"theoretical_ber"`
	ErrorCount     int     `json:"error_count"`
	TotalBits      int     `json:"total_bits"`

	// LowConfidence marks points where the expected error count at the
	// theoretical BER falls below the configured threshold, so a simulated
	// BER of zero there means "too few trials", not "error-free".
	LowConfidence bool `json:"low_confidence"`
}

// Result is the assembled record table for one sweep. Records are ordered
// scheme-major: all Eb/N0 points of the first requested scheme, then the
// second, and so on, with points in request order within each scheme.
type Result struct {
	Records     []Record  `json:"records"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Runner executes sweeps. The zero value is ready to use.
type Runner struct{}

// NewRunner creates a sweep runner.
func NewRunner() *Runner { return &Runner{} }

// job identifies one (scheme, point) trial and its slot in the record table.
type job struct {
	idx    int
	scheme modem.Scheme
	ebN0dB float64
}

// Run executes the sweep and returns the ordered record table. Configuration
// problems (no schemes, no points, non-positive bit count) fail before any
// trial starts; a trial failure or context cancellation aborts the sweep.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Schemes) == 0 {
		return nil, fmt.Errorf("no modulation schemes requested")
	}
	if len(req.EbN0dB) == 0 {
		return nil, fmt.Errorf("no Eb/N0 points requested")
	}
	if req.BitsPerPoint <= 0 {
		return nil, fmt.Errorf("bits per point must be positive, got %d", req.BitsPerPoint)
	}
	for _, scheme := range req.Schemes {
		if _, err := theory.ForScheme(scheme.Name(), 0); err != nil {
			return nil, err
		}
	}

	minErrors := req.MinExpectedErrors
	if minErrors <= 0 {
		minErrors = DefaultMinExpectedErrors
	}

	jobs := make([]job, 0, len(req.Schemes)*len(req.EbN0dB))
	for _, scheme := range req.Schemes {
		for _, db := range req.EbN0dB {
			jobs = append(jobs, job{idx: len(jobs), scheme: scheme, ebN0dB: db})
		}
	}

	result := &Result{
		Records:   make([]Record, len(jobs)),
		StartedAt: time.Now(),
	}

	var err error
	if req.Workers > 1 {
		err = r.runParallel(ctx, req, jobs, minErrors, result.Records)
	} else {
		err = r.runSerial(ctx, req, jobs, minErrors, result.Records)
	}
	if err != nil {
		return nil, err
	}

	result.CompletedAt = time.Now()
	return result, nil
}

// runSerial executes jobs one after another in table order.
func (r *Runner) runSerial(ctx context.Context, req Request, jobs []job, minErrors int, records []Record) error {
	for _, j := range jobs {
		select {
		case <-ctx.Done():
			return fmt.Errorf("sweep cancelled at point %d/%d: %w", j.idx+1, len(jobs), ctx.Err())
		default:
		}

		rec, err := r.runPoint(req, j, minErrors)
		if err != nil {
			return err
		}
		records[j.idx] = rec
	}
	return nil
}

// runParallel fans jobs out to a worker pool and reassembles records into
// table order via their job index.
func (r *Runner) runParallel(ctx context.Context, req Request, jobs []job, minErrors int, records []Record) error {
	jobCh := make(chan job)
	errCh := make(chan error, req.Workers)

	var wg sync.WaitGroup
	for w := 0; w < req.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Keep draining after a failure so the dispatcher never blocks.
			for j := range jobCh {
				rec, err := r.runPoint(req, j, minErrors)
				if err != nil {
					select {
					case errCh <- err:
					default:
					}
					continue
				}
				records[j.idx] = rec
			}
		}()
	}

	var cancelErr error
dispatch:
	for _, j := range jobs {
		select {
		case <-ctx.Done():
			cancelErr = fmt.Errorf("sweep cancelled at point %d/%d: %w", j.idx+1, len(jobs), ctx.Err())
			break dispatch
		case jobCh <- j:
		}
	}
	close(jobCh)
	wg.Wait()
	close(errCh)

	if cancelErr != nil {
		return cancelErr
	}
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// runPoint executes one trial with a generator derived from the base seed
// and the job's table index.
func (r *Runner) runPoint(req Request, j job, minErrors int) (Record, error) {
	sim := link.NewSimulator(rand.New(rand.NewSource(trialSeed(req.Seed, j.idx))))

	trial, err := sim.Run(j.scheme, j.ebN0dB, req.BitsPerPoint)
	if err != nil {
		return Record{}, fmt.Errorf("%s @ %g dB: %w", j.scheme.Name(), j.ebN0dB, err)
	}

	reference, err := theory.ForScheme(j.scheme.Name(), j.ebN0dB)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Scheme:         j.scheme.Name(),
		EbN0dB:         j.ebN0dB,
		SimulatedBER:   trial.BER(),
		TheoreticalBER: reference,
		ErrorCount:     trial.ErrorCount,
		TotalBits:      trial.TotalBits,
		LowConfidence:  reference*float64(trial.TotalBits) < float64(minErrors),
	}

	if !req.Quiet {
		log.Printf("[sweep] %s @ %g dB: BER=%.3e (theory %.3e, %d/%d errors)",
			rec.Scheme, rec.EbN0dB, rec.SimulatedBER, rec.TheoreticalBER, rec.ErrorCount, rec.TotalBits)
	}
	return rec, nil
}

// trialSeed mixes the base seed with the job index so every trial gets an
// independent, order-insensitive generator stream.
func trialSeed(base int64, idx int) int64 {
	z := uint64(base) + uint64(idx+1)*0x9E3779B97F4A7C15
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}
