// Package sweep iterates the link simulator across modulation schemes and a
// range of Eb/N0 points, assembling the BER record table that the report
// sinks consume. It also provides parsing helpers for the range notations
// accepted on the command line.
package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxPoints caps generated ranges so a malformed step cannot allocate an
// absurd sweep.
const maxPoints = 10000

// ParseCSVFloat64s parses a comma-separated list of float64 values.
// Returns nil, nil for empty input strings; empty elements are skipped.
func ParseCSVFloat64s(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// RangeSpec defines an inclusive start:end:step range of Eb/N0 values in dB.
type RangeSpec struct {
	Start float64
	End   float64
	Step  float64
}

// ParseRangeSpec parses a "start:end:step" string into a RangeSpec.
func ParseRangeSpec(s string) (RangeSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return RangeSpec{}, fmt.Errorf("invalid range format %q: expected start:end:step", s)
	}

	start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid start value %q: %w", parts[0], err)
	}

	end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid end value %q: %w", parts[1], err)
	}

	step, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid step value %q: %w", parts[2], err)
	}

	if step <= 0 {
		return RangeSpec{}, fmt.Errorf("step must be positive, got %f", step)
	}

	return RangeSpec{Start: start, End: end, Step: step}, nil
}

// GenerateRange generates values from start to end (inclusive) stepping by
// step. Values are rounded to millidecibels to avoid floating point
// accumulation drift. Returns nil if start > end, step is non-positive, or
// the range would exceed maxPoints values.
func GenerateRange(start, end, step float64) []float64 {
	if step <= 0 || start > end {
		return nil
	}

	expected := int((end-start)/step) + 1
	if expected > maxPoints || expected < 0 {
		return nil
	}

	var result []float64
	for v := start; v <= end+step/1000; v += step {
		if len(result) >= maxPoints {
			break
		}
		rounded := math.Round(v*1000) / 1000
		if rounded <= end {
			result = append(result, rounded)
		}
	}
	return result
}

// ParsePointList parses either a "start:end:step" range spec (when the
// string contains a colon) or a comma-separated list of dB values.
func ParsePointList(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}

	if strings.Contains(s, ":") {
		spec, err := ParseRangeSpec(s)
		if err != nil {
			return nil, err
		}
		return GenerateRange(spec.Start, spec.End, spec.Step), nil
	}

	return ParseCSVFloat64s(s)
}
