package spectral

import "errors"

// ErrSizeNotPowerOfTwo is returned by NewFFT for a non-power-of-two size.
var ErrSizeNotPowerOfTwo = errors.New("spectral: fft size must be a power of two")
