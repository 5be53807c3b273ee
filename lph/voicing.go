package lph

import (
	"math"

	"github.com/btsco/scoplc/spectral"
)

const (
	zcrThreshold      = 0.25
	energyThreshold   = 800
	flatnessThreshold = 0.6
)

// IsUnvoiced classifies frame as unvoiced (noise-like or fricative) from
// its zero-crossing rate, energy, and spectral flatness. A frame must
// exceed the zero-crossing threshold to be unvoiced, so an all-zero
// frame is classified voiced.
// The measured flatness is written to *outFlatness for callers that
// want it (ComputeLPC's threshold choice does not, but higher-level
// diagnostics might).
func IsUnvoiced(frame []int16, outFlatness *float32) bool {
	zcr := zeroCrossingRate(frame)
	energy := frameEnergy(frame)
	flatness := spectralFlatness(frame)
	if outFlatness != nil {
		*outFlatness = flatness
	}
	return zcr > zcrThreshold && (energy < energyThreshold || flatness > flatnessThreshold)
}

func zeroCrossingRate(frame []int16) float32 {
	if len(frame) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i-1] >= 0) != (frame[i] >= 0) {
			crossings++
		}
	}
	return float32(crossings) / float32(len(frame))
}

// spectralFlatness is the geometric mean over arithmetic mean of the
// magnitude spectrum bins [1, N/2), computed via a zero-padded FFT
// (padded up to the next power of two, since C3's FFT requires one and
// FRAMESZ itself is not).
func spectralFlatness(frame []int16) float32 {
	size := nextPowerOfTwo(len(frame))
	fft, err := spectral.NewFFT(size)
	if err != nil {
		return 0
	}

	buf := make([]float32, size*2)
	for i, s := range frame {
		buf[2*i] = float32(s) / 32768
	}
	fft.Forward(buf)

	half := size / 2
	if half < 2 {
		return 0
	}
	var logSum float64
	var linSum float64
	count := 0
	for k := 1; k < half; k++ {
		re := float64(buf[2*k])
		im := float64(buf[2*k+1])
		mag := math.Sqrt(re*re+im*im) + 1e-12
		logSum += math.Log(mag)
		linSum += mag
		count++
	}
	if count == 0 || linSum == 0 {
		return 0
	}
	geoMean := math.Exp(logSum / float64(count))
	arithMean := linSum / float64(count)
	return float32(geoMean / arithMean)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
