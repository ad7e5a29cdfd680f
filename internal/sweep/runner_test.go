package sweep

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ber.report/internal/modem"
)

func TestRunValidatesRequest(t *testing.T) {
	t.Parallel()
	runner := NewRunner()
	ctx := context.Background()

	t.Run("no schemes", func(t *testing.T) {
		_, err := runner.Run(ctx, Request{EbN0dB: []float64{0}, BitsPerPoint: 100, Quiet: true})
		assert.Error(t, err)
	})

	t.Run("no points", func(t *testing.T) {
		_, err := runner.Run(ctx, Request{Schemes: modem.All(), BitsPerPoint: 100, Quiet: true})
		assert.Error(t, err)
	})

	t.Run("non-positive bit count", func(t *testing.T) {
		_, err := runner.Run(ctx, Request{Schemes: modem.All(), EbN0dB: []float64{0}, BitsPerPoint: 0, Quiet: true})
		assert.Error(t, err)
	})
}

// TestRunRecordOrder pins the documented table order: scheme-major, Eb/N0
// points in request order within each scheme.
func TestRunRecordOrder(t *testing.T) {
	t.Parallel()
	runner := NewRunner()

	bpsk := modem.NewBPSK()
	qpsk := modem.NewQPSK()
	result, err := runner.Run(context.Background(), Request{
		Schemes:      []modem.Scheme{bpsk, qpsk},
		EbN0dB:       []float64{0, 5, 10},
		BitsPerPoint: 2000,
		Seed:         1,
		Quiet:        true,
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 6)

	wantOrder := []struct {
		scheme string
		ebN0dB float64
	}{
		{"BPSK", 0}, {"BPSK", 5}, {"BPSK", 10},
		{"QPSK", 0}, {"QPSK", 5}, {"QPSK", 10},
	}
	for i, want := range wantOrder {
		assert.Equal(t, want.scheme, result.Records[i].Scheme, "record %d scheme", i)
		assert.Equal(t, want.ebN0dB, result.Records[i].EbN0dB, "record %d Eb/N0", i)
	}
}

// TestRunBERMonotonicity checks that simulated BER is non-increasing across
// a range where the expected error counts are large enough that statistical
// noise cannot flip the ordering.
func TestRunBERMonotonicity(t *testing.T) {
	t.Parallel()
	runner := NewRunner()

	for _, scheme := range modem.All() {
		result, err := runner.Run(context.Background(), Request{
			Schemes:      []modem.Scheme{scheme},
			EbN0dB:       []float64{0, 2, 4, 6},
			BitsPerPoint: 200_000,
			Seed:         17,
			Quiet:        true,
		})
		require.NoError(t, err, scheme.Name())

		for i := 1; i < len(result.Records); i++ {
			prev, cur := result.Records[i-1], result.Records[i]
			assert.LessOrEqual(t, cur.SimulatedBER, prev.SimulatedBER,
				"%s: BER rose from %g dB to %g dB", scheme.Name(), prev.EbN0dB, cur.EbN0dB)
		}
	}
}

// TestRunQAM16WorstAtLowEbN0 verifies the higher-order scheme is the least
// noise-robust at equal energy per bit.
func TestRunQAM16WorstAtLowEbN0(t *testing.T) {
	t.Parallel()
	runner := NewRunner()

	result, err := runner.Run(context.Background(), Request{
		Schemes:      modem.All(),
		EbN0dB:       []float64{0},
		BitsPerPoint: 100_000,
		Seed:         23,
		Quiet:        true,
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 3)

	byScheme := make(map[string]Record, 3)
	for _, rec := range result.Records {
		byScheme[rec.Scheme] = rec
	}

	assert.Greater(t, byScheme["16-QAM"].SimulatedBER, byScheme["BPSK"].SimulatedBER)
	assert.Greater(t, byScheme["16-QAM"].SimulatedBER, byScheme["QPSK"].SimulatedBER)
}

// TestRunParallelMatchesSerial confirms that trial seeds depend only on the
// table position, so a worker pool produces the identical record table.
func TestRunParallelMatchesSerial(t *testing.T) {
	t.Parallel()
	runner := NewRunner()

	req := Request{
		Schemes:      modem.All(),
		EbN0dB:       []float64{0, 3, 6, 9},
		BitsPerPoint: 20_000,
		Seed:         99,
		Quiet:        true,
	}

	serial, err := runner.Run(context.Background(), req)
	require.NoError(t, err)

	req.Workers = 4
	parallel, err := runner.Run(context.Background(), req)
	require.NoError(t, err)

	if diff := cmp.Diff(serial.Records, parallel.Records); diff != "" {
		t.Errorf("parallel records differ from serial (-serial +parallel):\n%s", diff)
	}
}

func TestRunFlagsLowConfidencePoints(t *testing.T) {
	t.Parallel()
	runner := NewRunner()

	result, err := runner.Run(context.Background(), Request{
		Schemes:      []modem.Scheme{modem.NewBPSK()},
		EbN0dB:       []float64{0, 10},
		BitsPerPoint: 10_000,
		Seed:         5,
		Quiet:        true,
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	// ~786 expected errors at 0 dB, ~0.04 at 10 dB with 10k bits.
	assert.False(t, result.Records[0].LowConfidence, "0 dB point should be trustworthy")
	assert.True(t, result.Records[1].LowConfidence, "10 dB point has far too few expected errors")
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()
	runner := NewRunner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, Request{
		Schemes:      modem.All(),
		EbN0dB:       []float64{0, 5, 10},
		BitsPerPoint: 1000,
		Quiet:        true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Scheme: "BPSK", EbN0dB: 0, SimulatedBER: 0.08, TheoreticalBER: 0.0786, ErrorCount: 800, TotalBits: 10000},
		{Scheme: "BPSK", EbN0dB: 6, SimulatedBER: 0.002, TheoreticalBER: 0.0024, ErrorCount: 20, TotalBits: 10000},
		{Scheme: "QPSK", EbN0dB: 0, SimulatedBER: 0.078, TheoreticalBER: 0.0786, ErrorCount: 780, TotalBits: 10000},
	}

	summaries := Summarize(records)
	require.Len(t, summaries, 2)

	assert.Equal(t, "BPSK", summaries[0].Scheme)
	assert.Equal(t, 2, summaries[0].Points)
	assert.Equal(t, 820, summaries[0].TotalErrors)
	assert.Equal(t, 20000, summaries[0].TotalBits)
	assert.InDelta(t, 0.041, summaries[0].MeanBER, 1e-9)

	assert.Equal(t, "QPSK", summaries[1].Scheme)
	assert.Equal(t, 1, summaries[1].Points)
	assert.Equal(t, 0.0, summaries[1].StdDevBER)
}
