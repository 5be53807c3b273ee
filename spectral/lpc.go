package spectral

// LevinsonDurbin solves the Toeplitz normal equations for a predictor of
// up to maxOrder using the standard recursive algorithm, matching the
// reference implementation in audio_msbc_plc.c's lpc_analysis() and
// plc.c's compute_lpc(): coefficient 0 is fixed at 1.0, and coefficient k
// (k >= 1) is used directly as the forward-prediction weight
//
//	pred(n) = sum_{k=1}^{order} coeffs[k] * x(n-k)
//
// autocorr must have length maxOrder+1 with autocorr[0] the zero-lag
// energy. The stop callback is invoked after each order i (minOrder <= i <=
// maxOrder) with the normalized residual energy error/autocorr[0]; if it
// returns true the recursion halts and that order is returned. Pass nil
// to always run the full maxOrder.
//
// If autocorr[0] is too small to normalize safely, a minimum-order
// all-zero predictor is returned (coeffs[0]=1, everything else 0).
func LevinsonDurbin(autocorr []float64, maxOrder, minOrder int, stop func(order int, errNorm float64) bool) (coeffs []float64, order int) {
	coeffs = make([]float64, maxOrder+1)
	coeffs[0] = 1.0

	if autocorr[0] < 1e-6 {
		return coeffs, minOrder
	}

	err := autocorr[0]
	order = maxOrder

	for i := 1; i <= maxOrder; i++ {
		reflection := -autocorr[i]
		for j := 1; j < i; j++ {
			reflection -= coeffs[j] * autocorr[i-j]
		}
		reflection /= err

		coeffs[i] = reflection
		for j := 1; j <= i/2; j++ {
			tmp := coeffs[j]
			coeffs[j] += reflection * coeffs[i-j]
			if j != i-j {
				coeffs[i-j] += reflection * tmp
			}
		}
		err *= 1 - reflection*reflection

		if stop != nil && i >= minOrder && stop(i, err/autocorr[0]) {
			order = i
			break
		}
	}
	// The recursion builds the whitening polynomial A(z) = 1 + sum a_k z^-k;
	// its predictor weights are -a_k.
	for k := 1; k <= maxOrder; k++ {
		coeffs[k] = -coeffs[k]
	}
	return coeffs, order
}

// Autocorrelate computes the biased autocorrelation of samples up to lag
// maxLag (inclusive), writing autocorr[0..maxLag].
func Autocorrelate(samples []float64, maxLag int) []float64 {
	autocorr := make([]float64, maxLag+1)
	n := len(samples)
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for i := 0; i < n-lag; i++ {
			sum += samples[i] * samples[i+lag]
		}
		autocorr[lag] = sum
	}
	return autocorr
}
