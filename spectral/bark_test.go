package spectral

import "testing"

func TestGetBarkBandBoundaries(t *testing.T) {
	cases := []struct {
		hz   float64
		want int
	}{
		{0, 0},
		{50, 0},
		{100, 1},
		{15499, NumBarkBands - 1},
		{20000, NumBarkBands - 1},
		{-10, 0},
	}
	for _, c := range cases {
		if got := GetBarkBand(c.hz); got != c.want {
			t.Errorf("GetBarkBand(%v) = %d, want %d", c.hz, got, c.want)
		}
	}
}

func TestMaskingThresholdsMonotoneWithEnergy(t *testing.T) {
	var low, high [NumBarkBands]float64
	for b := range low {
		low[b] = 1
		high[b] = 1000
	}
	tLow := MaskingThresholds(low)
	tHigh := MaskingThresholds(high)
	for b := range tLow {
		if tHigh[b] <= tLow[b] {
			t.Fatalf("band %d: expected higher energy to raise masking threshold, got low=%v high=%v", b, tLow[b], tHigh[b])
		}
	}
}

func TestMaskingThresholdsZeroEnergy(t *testing.T) {
	var zero [NumBarkBands]float64
	th := MaskingThresholds(zero)
	for b, v := range th {
		if v < 0 {
			t.Fatalf("band %d: threshold should never be negative, got %v", b, v)
		}
	}
}
