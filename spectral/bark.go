package spectral

import "math"

// NumBarkBands is the number of critical bands in the fixed Bark mapping.
const NumBarkBands = 24

// barkBandBoundaries holds the NumBarkBands+1 band edges in Hz, matching
// the table in plc.c / audio_msbc_plc.c (itself the standard Zwicker
// Bark scale boundaries).
var barkBandBoundaries = [NumBarkBands + 1]float64{
	0, 100, 200, 300, 400, 510, 630, 770, 920, 1080, 1270, 1480,
	1720, 2000, 2320, 2700, 3150, 3700, 4400, 5300, 6400, 7700, 9500, 12000, 15500,
}

// hearingThreshold is the absolute hearing threshold (dB SPL) per Bark
// band, used to correct the masking-threshold computation for bands the
// ear is intrinsically insensitive or sensitive to.
var hearingThreshold = [NumBarkBands]float64{
	30, 20, 15, 10, 5, 0, -5, -5, -5, -5, -5, -5,
	0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55,
}

// GetBarkBand returns the index of the Bark band whose half-open
// interval [lo, hi) contains hz, clamped to [0, NumBarkBands-1].
func GetBarkBand(hz float64) int {
	if hz < barkBandBoundaries[0] {
		return 0
	}
	for b := 0; b < NumBarkBands; b++ {
		if hz >= barkBandBoundaries[b] && hz < barkBandBoundaries[b+1] {
			return b
		}
	}
	return NumBarkBands - 1
}

// MaskingThresholds computes a linear-amplitude masking threshold per
// Bark band from average per-band power, spreading each band's energy
// into its neighbours (2 dB/Bark below band 10, 4 dB/Bark above) and
// subtracting the absolute hearing threshold, per spec section 4.2's
// noise_shaping().
func MaskingThresholds(bandEnergy [NumBarkBands]float64) [NumBarkBands]float64 {
	var acc [NumBarkBands]float64
	for b := 0; b < NumBarkBands; b++ {
		if bandEnergy[b] <= 0 {
			continue
		}
		bandDB := 10 * math.Log10(bandEnergy[b]+1e-12)
		spreadFactor := 2.0
		if b >= 10 {
			spreadFactor = 4.0
		}
		for adj := 0; adj < NumBarkBands; adj++ {
			dist := math.Abs(float64(b - adj))
			spreadDB := -spreadFactor * dist
			acc[adj] += math.Pow(10, (bandDB+spreadDB-hearingThreshold[adj])/10)
		}
	}
	var threshold [NumBarkBands]float64
	for b := 0; b < NumBarkBands; b++ {
		threshold[b] = math.Sqrt(acc[b] + 1e-12)
	}
	return threshold
}
