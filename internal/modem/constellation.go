package modem

import "math"

// Constellation holds the ordered symbol points for one scheme. Index i is
// the point transmitted for the bit pattern whose MSB-first value is i, so
// the pattern-to-point mapping is bijective by construction.
type Constellation struct {
	points        []complex128
	bitsPerSymbol int
	scale         float64 // applied normalization factor
}

// NewConstellation builds a constellation from raw lattice points and scales
// every point by a single factor so the average energy over all points is 1.
// len(points) must equal 1<<bitsPerSymbol.
func NewConstellation(points []complex128, bitsPerSymbol int) *Constellation {
	c := &Constellation{
		points:        make([]complex128, len(points)),
		bitsPerSymbol: bitsPerSymbol,
	}
	copy(c.points, points)
	c.normalize()
	return c
}

// normalize rescales all points to unit average energy.
func (c *Constellation) normalize() {
	var avgEnergy float64
	for _, p := range c.points {
		avgEnergy += real(p)*real(p) + imag(p)*imag(p)
	}
	avgEnergy /= float64(len(c.points))

	c.scale = 1.0 / math.Sqrt(avgEnergy)
	for i := range c.points {
		c.points[i] = complex(real(c.points[i])*c.scale, imag(c.points[i])*c.scale)
	}
}

// Size returns the number of constellation points.
func (c *Constellation) Size() int { return len(c.points) }

// Point returns the symbol for the given bit-pattern index.
func (c *Constellation) Point(idx int) complex128 { return c.points[idx] }

// AverageEnergy returns mean(|point|^2) over all points. After construction
// this is 1 up to floating-point rounding.
func (c *Constellation) AverageEnergy() float64 {
	var sum float64
	for _, p := range c.points {
		sum += real(p)*real(p) + imag(p)*imag(p)
	}
	return sum / float64(len(c.points))
}

// Nearest returns the index of the constellation point with minimum squared
// Euclidean distance to s. Exact ties resolve to the lowest index, which
// keeps the decision deterministic for inputs equidistant from two points.
func (c *Constellation) Nearest(s complex128) int {
	minDist := math.MaxFloat64
	minIdx := 0
	for i, p := range c.points {
		dr := real(s) - real(p)
		di := imag(s) - imag(p)
		d := dr*dr + di*di
		if d < minDist {
			minDist = d
			minIdx = i
		}
	}
	return minIdx
}

// mapBits maps a validated bit slice onto symbols, one per bitsPerSymbol
// group.
func (c *Constellation) mapBits(bits []byte) []complex128 {
	k := c.bitsPerSymbol
	symbols := make([]complex128, len(bits)/k)
	for i := range symbols {
		symbols[i] = c.points[bitsToIndex(bits[i*k:(i+1)*k])]
	}
	return symbols
}

// demapNearest recovers bits from symbols via full minimum-distance search.
func (c *Constellation) demapNearest(received []complex128) []byte {
	k := c.bitsPerSymbol
	bits := make([]byte, 0, len(received)*k)
	for _, s := range received {
		bits = append(bits, indexToBits(c.Nearest(s), k)...)
	}
	return bits
}
