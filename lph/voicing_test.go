package lph

import (
	"math"
	"math/rand"
	"testing"
)

func TestIsUnvoicedToneIsVoiced(t *testing.T) {
	samples := make([]int16, 120)
	for i := range samples {
		samples[i] = int16(9000 * math.Sin(2*math.Pi*float64(i)/35.0))
	}
	var flatness float32
	if IsUnvoiced(samples, &flatness) {
		t.Errorf("a clean low-frequency tone should be classified voiced")
	}
}

func TestIsUnvoicedNoiseIsUnvoiced(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	samples := make([]int16, 120)
	for i := range samples {
		samples[i] = int16(r.Intn(4000) - 2000)
	}
	var flatness float32
	if !IsUnvoiced(samples, &flatness) {
		t.Errorf("broadband noise should be classified unvoiced (flatness=%v)", flatness)
	}
}

func TestZeroCrossingRateRange(t *testing.T) {
	samples := make([]int16, 100)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 100
		} else {
			samples[i] = -100
		}
	}
	zcr := zeroCrossingRate(samples)
	if zcr < 0.9 {
		t.Errorf("alternating signal should have zcr near 1, got %v", zcr)
	}
}
