package modem

// QPSK maps two bits per symbol, one per quadrature axis: the first bit
// selects the sign of the real component and the second the sign of the
// imaginary component (0 positive, 1 negative). Points sit at +-1/sqrt(2) on
// each axis, giving unit symbol energy.
type QPSK struct {
	c *Constellation
}

// NewQPSK returns the QPSK scheme.
func NewQPSK() *QPSK {
	return &QPSK{c: NewConstellation([]complex128{
		complex(1, 1),   // 00
		complex(1, -1),  // 01
		complex(-1, 1),  // 10
		complex(-1, -1), // 11
	}, 2)}
}

// Name implements Scheme.
func (m *QPSK) Name() string { return "QPSK" }

// BitsPerSymbol implements Scheme.
func (m *QPSK) BitsPerSymbol() int { return 2 }

// Constellation returns the underlying constellation.
func (m *QPSK) Constellation() *Constellation { return m.c }

// Modulate implements Scheme.
func (m *QPSK) Modulate(bits []byte) ([]complex128, error) {
	if err := checkBitLength(bits, 2); err != nil {
		return nil, err
	}
	return m.c.mapBits(bits), nil
}

// Demodulate decides the two bits of each symbol independently from the signs
// of the real and imaginary components. The axes carry independent antipodal
// decisions, so this matches a full minimum-distance search over the four
// points.
func (m *QPSK) Demodulate(received []complex128) []byte {
	bits := make([]byte, 0, len(received)*2)
	for _, s := range received {
		var b0, b1 byte
		if real(s) < 0 {
			b0 = 1
		}
		if imag(s) < 0 {
			b1 = 1
		}
		bits = append(bits, b0, b1)
	}
	return bits
}
