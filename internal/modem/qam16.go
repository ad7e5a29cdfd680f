package modem

// qamLevels maps a 2-bit value onto an amplitude level of the 4x4 lattice.
// The first bit selects the half-plane and the second the inner/outer ring,
// matching the constellation table this simulator has always used.
var qamLevels = [4]float64{-3, -1, 3, 1}

// QAM16 maps four bits per symbol onto a 4x4 square lattice with levels
// {+-1, +-3} per axis: the first two bits select the real level and the last
// two the imaginary level. The lattice is scaled by 1/sqrt(10) so the average
// energy over all 16 equiprobable points is 1.
type QAM16 struct {
	c *Constellation
}

// NewQAM16 returns the 16-QAM scheme.
func NewQAM16() *QAM16 {
	points := make([]complex128, 16)
	for idx := range points {
		points[idx] = complex(qamLevels[idx>>2], qamLevels[idx&3])
	}
	return &QAM16{c: NewConstellation(points, 4)}
}

// Name implements Scheme.
func (m *QAM16) Name() string { return "16-QAM" }

// BitsPerSymbol implements Scheme.
func (m *QAM16) BitsPerSymbol() int { return 4 }

// Constellation returns the underlying constellation.
func (m *QAM16) Constellation() *Constellation { return m.c }

// Modulate implements Scheme.
func (m *QAM16) Modulate(bits []byte) ([]complex128, error) {
	if err := checkBitLength(bits, 4); err != nil {
		return nil, err
	}
	return m.c.mapBits(bits), nil
}

// Demodulate recovers bits by minimum-distance search over all 16 points.
// The lattice levels are not separable into independent per-axis sign
// decisions, so the generic nearest-point receiver is the correct one here.
func (m *QAM16) Demodulate(received []complex128) []byte {
	return m.c.demapNearest(received)
}
