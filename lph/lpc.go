package lph

import "github.com/btsco/scoplc/spectral"

// voicedStopThreshold and unvoicedStopThreshold are the normalized
// residual-energy thresholds compute_lpc uses to fix the predictor
// order early: voiced frames are held to the tighter threshold, so they
// stop at the same or a higher order than unvoiced ones.
const (
	voicedStopThreshold   = 0.05
	unvoicedStopThreshold = 0.10
)

// ComputeLPC fits a Levinson-Durbin predictor to samples, stopping as
// soon as the normalized residual energy crosses the voiced/unvoiced
// threshold at order >= MinLPCOrder, or running the full MaxLPCOrder if
// it never does. Returns the predictor coefficients
// (coeffs[0]=1, pred(n) = sum coeffs[k]*x(n-k) for k=1..order) and the
// order actually used.
func ComputeLPC(samples []int16, isUnvoiced bool) ([]float32, int) {
	threshold := voicedStopThreshold
	if isUnvoiced {
		threshold = unvoicedStopThreshold
	}

	floatSamples := make([]float64, len(samples))
	for i, s := range samples {
		floatSamples[i] = float64(s)
	}
	autocorr := spectral.Autocorrelate(floatSamples, MaxLPCOrder)

	stop := func(order int, errNorm float64) bool {
		return errNorm < threshold
	}
	coeffs64, order := spectral.LevinsonDurbin(autocorr, MaxLPCOrder, MinLPCOrder, stop)

	coeffs := make([]float32, MaxLPCOrder+1)
	for i, v := range coeffs64 {
		coeffs[i] = float32(v)
	}
	return coeffs, order
}
