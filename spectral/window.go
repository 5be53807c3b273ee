package spectral

import "math"

// HanningWindow returns an n-sample Hanning window, w[i] = 0.5 - 0.5*cos(2*pi*i/(n-1)).
func HanningWindow(n int) []float32 {
	w := make([]float32, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = float32(0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
