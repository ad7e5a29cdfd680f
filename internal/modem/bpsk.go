package modem

// BPSK maps one bit per symbol on the real axis: bit 0 transmits +1 and
// bit 1 transmits -1. The constellation is already unit energy.
type BPSK struct {
	c *Constellation
}

// NewBPSK returns the BPSK scheme.
func NewBPSK() *BPSK {
	return &BPSK{c: NewConstellation([]complex128{
		complex(1, 0),  // 0
		complex(-1, 0), // 1
	}, 1)}
}

// Name implements Scheme.
func (m *BPSK) Name() string { return "BPSK" }

// BitsPerSymbol implements Scheme.
func (m *BPSK) BitsPerSymbol() int { return 1 }

// Constellation returns the underlying constellation.
func (m *BPSK) Constellation() *Constellation { return m.c }

// Modulate implements Scheme.
func (m *BPSK) Modulate(bits []byte) ([]complex128, error) {
	if err := checkBitLength(bits, 1); err != nil {
		return nil, err
	}
	return m.c.mapBits(bits), nil
}

// Demodulate decides each bit from the sign of the real component. The
// constellation is antipodal on the real axis, so this is bit-identical to a
// minimum-distance search.
func (m *BPSK) Demodulate(received []complex128) []byte {
	bits := make([]byte, len(received))
	for i, s := range received {
		if real(s) < 0 {
			bits[i] = 1
		}
	}
	return bits
}
