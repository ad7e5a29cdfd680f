// Package link runs single Monte-Carlo link trials: random bits are
// modulated, pushed through the AWGN channel at a noise level derived from
// the target Eb/N0, demodulated, and compared against the source bits.
package link

import (
	"fmt"
	"math/rand"

	"github.com/banshee-data/ber.report/internal/channel"
	"github.com/banshee-data/ber.report/internal/modem"
	"github.com/banshee-data/ber.report/internal/theory"
)

// TrialResult summarises one (scheme, Eb/N0) trial.
type TrialResult struct {
	ErrorCount int // bit positions where recovered != transmitted
	TotalBits  int // data bits compared, excluding any padding
	Symbols    int // symbols pushed through the channel
}

// BER returns the bit error rate for the trial. TotalBits is at least 1 for
// any trial produced by Run, so the ratio is always defined.
func (r TrialResult) BER() float64 {
	if r.TotalBits == 0 {
		return 0
	}
	return float64(r.ErrorCount) / float64(r.TotalBits)
}

// NoiseVariance derives the per-component noise variance for a unit-energy
// constellation at the given Eb/N0 in dB. With Es/N0 = k*Eb/N0 and noise
// power N0/2 per dimension, sigma^2 = 1/(2*k*EbN0linear).
func NoiseVariance(ebN0dB float64, bitsPerSymbol int) float64 {
	return 1.0 / (2.0 * float64(bitsPerSymbol) * theory.LinearEbN0(ebN0dB))
}

// Simulator runs link trials using one random generator for both the bit
// source and the channel noise. Seed the generator per trial for
// reproducible sweeps.
type Simulator struct {
	rng *rand.Rand
	ch  *channel.AWGN
}

// NewSimulator creates a simulator around the given generator.
func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng, ch: channel.NewAWGN(rng)}
}

// Run simulates numBits data bits of the given scheme at one Eb/N0 point.
// Bits are generated fresh for every call. When numBits is not a multiple of
// the scheme's bits per symbol, the block is padded with zero bits to fill
// the last symbol; padding is transmitted but never counted as data.
func (s *Simulator) Run(scheme modem.Scheme, ebN0dB float64, numBits int) (TrialResult, error) {
	if numBits <= 0 {
		return TrialResult{}, fmt.Errorf("bit count must be positive, got %d", numBits)
	}

	k := scheme.BitsPerSymbol()
	padded := numBits
	if rem := numBits % k; rem != 0 {
		padded += k - rem
	}

	bits := make([]byte, padded)
	for i := 0; i < numBits; i++ {
		bits[i] = byte(s.rng.Intn(2))
	}
	// bits[numBits:] stay zero as padding.

	symbols, err := scheme.Modulate(bits)
	if err != nil {
		return TrialResult{}, fmt.Errorf("modulate %s: %w", scheme.Name(), err)
	}

	received, err := s.ch.Transmit(symbols, NoiseVariance(ebN0dB, k))
	if err != nil {
		return TrialResult{}, fmt.Errorf("transmit %s: %w", scheme.Name(), err)
	}

	recovered := scheme.Demodulate(received)

	errorCount := 0
	for i := 0; i < numBits; i++ {
		if recovered[i] != bits[i] {
			errorCount++
		}
	}

	return TrialResult{
		ErrorCount: errorCount,
		TotalBits:  numBits,
		Symbols:    len(symbols),
	}, nil
}
