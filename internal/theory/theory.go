// Package theory computes closed-form bit error rate reference curves for
// the supported modulation schemes over AWGN. The sweep runner pairs these
// with Monte-Carlo estimates so a drift in the simulator shows up as a gap
// between the two curves.
package theory

import (
	"fmt"
	"math"
)

// LinearEbN0 converts an Eb/N0 value from dB to a linear power ratio.
func LinearEbN0(db float64) float64 {
	return math.Pow(10, db/10)
}

// BPSK returns the exact BPSK bit error probability
// Pb = Q(sqrt(2*Eb/N0)) = 0.5*erfc(sqrt(Eb/N0)) for a linear Eb/N0.
func BPSK(ebN0 float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(ebN0))
}

// QPSK returns the QPSK bit error probability. With Gray-mapped quadrants
// each axis carries an independent BPSK decision at the same energy per bit,
// so the curve is identical to BPSK's.
func QPSK(ebN0 float64) float64 {
	return BPSK(ebN0)
}

// QAM16 returns the nearest-neighbour approximation of the 16-QAM bit error
// probability, Pb ~= (3/8)*erfc(sqrt(0.4*Eb/N0)). This is the standard
// square-QAM approximation, tight above a few dB but not an exact expression.
func QAM16(ebN0 float64) float64 {
	return 0.375 * math.Erfc(math.Sqrt(0.4*ebN0))
}

// ForScheme returns the reference BER for the named scheme at the given
// Eb/N0 in dB. Scheme names follow modem.Scheme.Name().
func ForScheme(name string, ebN0dB float64) (float64, error) {
	ebN0 := LinearEbN0(ebN0dB)
	switch name {
	case "BPSK":
		return BPSK(ebN0), nil
	case "QPSK":
		return QPSK(ebN0), nil
	case "16-QAM":
		return QAM16(ebN0), nil
	}
	return 0, fmt.Errorf("no theoretical BER curve for scheme %q", name)
}
