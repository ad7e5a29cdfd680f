// Package channel models the memoryless AWGN channel: each transmitted
// symbol picks up an independent complex Gaussian noise sample.
package channel

import (
	"fmt"
	"math"
	"math/rand"
)

// AWGN injects additive white Gaussian noise onto symbol sequences. The
// generator is supplied by the caller so runs are reproducible; the channel
// itself keeps no state between calls.
type AWGN struct {
	rng *rand.Rand
}

// NewAWGN creates a channel drawing noise from the given generator.
func NewAWGN(rng *rand.Rand) *AWGN {
	return &AWGN{rng: rng}
}

// Transmit returns a new sequence where each symbol has independent Gaussian
// noise added to its real and imaginary components, each with variance
// noiseVariance. A zero variance is the noiseless limit and returns the
// symbols unchanged; a negative variance is a precondition violation.
func (c *AWGN) Transmit(symbols []complex128, noiseVariance float64) ([]complex128, error) {
	if noiseVariance < 0 {
		return nil, fmt.Errorf("noise variance must be non-negative, got %g", noiseVariance)
	}

	out := make([]complex128, len(symbols))
	if noiseVariance == 0 {
		copy(out, symbols)
		return out, nil
	}

	sigma := math.Sqrt(noiseVariance)
	for i, s := range symbols {
		out[i] = s + complex(sigma*c.rng.NormFloat64(), sigma*c.rng.NormFloat64())
	}
	return out, nil
}
