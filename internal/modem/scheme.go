// Package modem implements the baseband modulation schemes used by the BER
// simulator: BPSK, QPSK, and 16-QAM. Each scheme maps groups of bits onto a
// unit-average-energy complex constellation and recovers bits from noisy
// symbols, so Eb/N0 sweeps are directly comparable across schemes.
package modem

import (
	"fmt"
	"strings"
)

// Scheme is the contract shared by all modulation schemes. Bits are
// represented one per byte with value 0 or 1.
type Scheme interface {
	// Name returns the canonical scheme name (e.g. "BPSK", "16-QAM").
	Name() string

	// BitsPerSymbol returns the number of bits carried by one symbol.
	BitsPerSymbol() int

	// Modulate maps bits onto constellation symbols, one symbol per
	// BitsPerSymbol() bits. The input length must be an exact multiple of
	// BitsPerSymbol().
	Modulate(bits []byte) ([]complex128, error)

	// Demodulate recovers BitsPerSymbol() bits from each received symbol.
	Demodulate(received []complex128) []byte
}

// All returns the supported schemes in their canonical order:
// BPSK, QPSK, 16-QAM.
func All() []Scheme {
	return []Scheme{NewBPSK(), NewQPSK(), NewQAM16()}
}

// ByName resolves a scheme from its name. Matching is case-insensitive and
// tolerates the "16qam" spelling for 16-QAM.
func ByName(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bpsk":
		return NewBPSK(), nil
	case "qpsk":
		return NewQPSK(), nil
	case "16-qam", "16qam", "qam16":
		return NewQAM16(), nil
	}
	return nil, fmt.Errorf("unknown modulation scheme %q (valid: bpsk, qpsk, 16-qam)", name)
}

// checkBitLength validates that the bit slice divides evenly into symbols.
func checkBitLength(bits []byte, bitsPerSymbol int) error {
	if len(bits)%bitsPerSymbol != 0 {
		return fmt.Errorf("bit count %d is not a multiple of %d bits per symbol", len(bits), bitsPerSymbol)
	}
	return nil
}

// bitsToIndex packs up to 8 bits (MSB first) into a constellation index.
func bitsToIndex(bits []byte) int {
	idx := 0
	for _, b := range bits {
		idx = (idx << 1) | int(b&1)
	}
	return idx
}

// indexToBits unpacks a constellation index into numBits bits, MSB first.
func indexToBits(idx, numBits int) []byte {
	bits := make([]byte, numBits)
	for i := numBits - 1; i >= 0; i-- {
		bits[i] = byte(idx & 1)
		idx >>= 1
	}
	return bits
}
