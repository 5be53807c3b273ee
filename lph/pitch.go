package lph

import "math"

// FindPitchPeriod estimates the pitch period of samples by correlating
// a pre-emphasized copy of the signal against itself at lags in
// [PitchMin, PitchMax], smoothing the resulting log-correlation
// ("cepstrum") with a 3-tap (0.3, 0.4, 0.3) filter to suppress
// spurious peaks, then blending the smoothed argmax with prevPeriod for
// frame-to-frame stability.
func FindPitchPeriod(samples []int16, prevPeriod int) int {
	n := len(samples)
	emphasized := make([]float64, n)
	emphasized[0] = float64(samples[0])
	for i := 1; i < n; i++ {
		emphasized[i] = float64(samples[i]) - 0.97*float64(samples[i-1])
	}

	lo, hi := PitchMin, PitchMax
	if hi > n-1 {
		hi = n - 1
	}
	if lo > hi {
		lo = hi
	}
	span := hi - lo + 1
	if span <= 0 {
		return prevPeriod
	}

	logCorr := make([]float64, span)
	for p := lo; p <= hi; p++ {
		var corr float64
		for i := 0; i+p < n; i++ {
			corr += emphasized[i] * emphasized[i+p]
		}
		logCorr[p-lo] = math.Log(math.Abs(corr) + 1e-9)
	}

	smoothed := make([]float64, span)
	for i := range logCorr {
		var acc float64
		if i-1 >= 0 {
			acc += 0.3 * logCorr[i-1]
		} else {
			acc += 0.3 * logCorr[i]
		}
		acc += 0.4 * logCorr[i]
		if i+1 < span {
			acc += 0.3 * logCorr[i+1]
		} else {
			acc += 0.3 * logCorr[i]
		}
		smoothed[i] = acc
	}

	best := lo
	bestVal := smoothed[0]
	for i := 1; i < span; i++ {
		if smoothed[i] > bestVal {
			bestVal = smoothed[i]
			best = lo + i
		}
	}

	if prevPeriod <= 0 {
		return best
	}
	return int(math.Round(0.7*float64(best) + 0.3*float64(prevPeriod)))
}
