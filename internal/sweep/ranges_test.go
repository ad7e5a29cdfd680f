package sweep

import (
	"math"
	"testing"
)

func TestParseCSVFloat64s(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []float64
		expectErr bool
	}{
		{"empty_string", "", nil, false},
		{"single_value", "6", []float64{6}, false},
		{"multiple_values", "0,5,10", []float64{0, 5, 10}, false},
		{"with_spaces", " 0 , 2.5 , 5 ", []float64{0, 2.5, 5}, false},
		{"negative_values", "-2,-1,0", []float64{-2, -1, 0}, false},
		{"invalid_value", "0,abc,10", nil, true},
		{"empty_parts", "0,,10", []float64{0, 10}, false},
		{"trailing_comma", "0,5,", []float64{0, 5}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCSVFloat64s(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Errorf("Expected error for input %q, got nil", tc.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if len(result) != len(tc.expected) {
				t.Errorf("Length mismatch: expected %d, got %d", len(tc.expected), len(result))
				return
			}
			for i, v := range result {
				if v != tc.expected[i] {
					t.Errorf("Value mismatch at index %d: expected %f, got %f", i, tc.expected[i], v)
				}
			}
		})
	}
}

func TestParseRangeSpec(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  RangeSpec
		expectErr bool
	}{
		{"valid", "0:14:1", RangeSpec{0, 14, 1}, false},
		{"fractional_step", "0:10:0.5", RangeSpec{0, 10, 0.5}, false},
		{"negative_start", "-2:6:2", RangeSpec{-2, 6, 2}, false},
		{"with_spaces", " 0 : 14 : 1 ", RangeSpec{0, 14, 1}, false},
		{"two_parts", "0:14", RangeSpec{}, true},
		{"four_parts", "0:14:1:2", RangeSpec{}, true},
		{"bad_start", "x:14:1", RangeSpec{}, true},
		{"zero_step", "0:14:0", RangeSpec{}, true},
		{"negative_step", "0:14:-1", RangeSpec{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := ParseRangeSpec(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Errorf("Expected error for input %q, got %+v", tc.input, spec)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if spec != tc.expected {
				t.Errorf("ParseRangeSpec(%q) = %+v, want %+v", tc.input, spec, tc.expected)
			}
		})
	}
}

func TestGenerateRange(t *testing.T) {
	testCases := []struct {
		name     string
		start    float64
		end      float64
		step     float64
		expected []float64
	}{
		{"unit_step", 0, 4, 1, []float64{0, 1, 2, 3, 4}},
		{"half_step", 0, 2, 0.5, []float64{0, 0.5, 1, 1.5, 2}},
		{"single_point", 6, 6, 1, []float64{6}},
		{"negative_range", -4, 0, 2, []float64{-4, -2, 0}},
		{"start_after_end", 10, 0, 1, nil},
		{"zero_step", 0, 10, 0, nil},
		{"end_not_on_grid", 0, 4.5, 2, []float64{0, 2, 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := GenerateRange(tc.start, tc.end, tc.step)
			if len(result) != len(tc.expected) {
				t.Fatalf("GenerateRange(%v, %v, %v) = %v, want %v", tc.start, tc.end, tc.step, result, tc.expected)
			}
			for i, v := range result {
				if math.Abs(v-tc.expected[i]) > 1e-9 {
					t.Errorf("Value mismatch at index %d: expected %v, got %v", i, tc.expected[i], v)
				}
			}
		})
	}
}

func TestGenerateRangeAvoidsAccumulationDrift(t *testing.T) {
	// 0.1 steps accumulate binary representation error; every generated
	// value must still land exactly on a millidecibel boundary.
	values := GenerateRange(0, 2, 0.1)
	if len(values) != 21 {
		t.Fatalf("got %d values, want 21", len(values))
	}
	for i, v := range values {
		want := math.Round(float64(i)*0.1*1000) / 1000
		if v != want {
			t.Errorf("value %d = %v, want %v", i, v, want)
		}
	}
}

func TestParsePointList(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []float64
		expectErr bool
	}{
		{"empty", "", nil, false},
		{"comma_list", "0,6,12", []float64{0, 6, 12}, false},
		{"range_spec", "0:4:2", []float64{0, 2, 4}, false},
		{"bad_range", "0:4", nil, true},
		{"bad_list", "0,x", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParsePointList(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Errorf("Expected error for input %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if len(result) != len(tc.expected) {
				t.Fatalf("ParsePointList(%q) = %v, want %v", tc.input, result, tc.expected)
			}
			for i, v := range result {
				if math.Abs(v-tc.expected[i]) > 1e-9 {
					t.Errorf("Value mismatch at index %d: expected %v, got %v", i, tc.expected[i], v)
				}
			}
		})
	}
}
