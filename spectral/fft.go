// Package spectral implements the numeric building blocks shared by
// both concealers: a radix-2 complex FFT, a Levinson-Durbin LPC solver,
// a Hanning window, and the Bark-band / masking-threshold tables used by
// the LPC/pitch hybrid concealer's optional psychoacoustic post-filter.
package spectral

import "math"

// FFT is a radix-2 decimation-in-time complex FFT with precomputed
// twiddle factors. Size must be a power of two; construction validates
// this once so per-call Forward/Inverse never need to.
//
// Input/output buffers are interleaved [Re, Im, Re, Im, ...] of length
// 2*N, matching the calling convention of the ANSI-C reference this is
// ported from (plc/plc/fft.c in the G.711 Appendix I PLC source tree).
type FFT struct {
	n        int
	twiddles []complex128 // twiddles[k] = exp(-2*pi*i*k/n), k = 0..n/2-1
	bitrev   []int
}

// NewFFT builds an FFT plan for the given size. Size must be a power of
// two and at least 2; sizes up to 512 and beyond are supported.
func NewFFT(size int) (*FFT, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, ErrSizeNotPowerOfTwo
	}
	f := &FFT{n: size}
	f.twiddles = make([]complex128, size/2)
	for k := 0; k < size/2; k++ {
		angle := -2 * math.Pi * float64(k) / float64(size)
		f.twiddles[k] = complex(math.Cos(angle), math.Sin(angle))
	}
	f.bitrev = make([]int, size)
	bits := 0
	for 1<<bits < size {
		bits++
	}
	for i := 0; i < size; i++ {
		f.bitrev[i] = reverseBits(i, bits)
	}
	return f, nil
}

// Size returns the configured transform length.
func (f *FFT) Size() int { return f.n }

// Forward computes the in-place forward DFT of buf, an interleaved
// [Re, Im, ...] slice of length 2*Size().
func (f *FFT) Forward(buf []float32) {
	f.transform(buf, false)
}

// Inverse computes the in-place inverse DFT of buf and scales by 1/N,
// matching the reference's fft_execute(..., is_inverse=true).
func (f *FFT) Inverse(buf []float32) {
	f.transform(buf, true)
	scale := float32(1.0 / float64(f.n))
	for i := range buf {
		buf[i] *= scale
	}
}

func (f *FFT) transform(buf []float32, inverse bool) {
	n := f.n

	// Bit-reversal permutation.
	for i := 0; i < n; i++ {
		j := f.bitrev[i]
		if j > i {
			buf[2*i], buf[2*j] = buf[2*j], buf[2*i]
			buf[2*i+1], buf[2*j+1] = buf[2*j+1], buf[2*i+1]
		}
	}

	// Iterative Cooley-Tukey, combining butterflies of doubling size.
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := n / size
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := f.twiddles[k*step]
				if inverse {
					w = complex(real(w), -imag(w))
				}
				ur, ui := buf[2*(start+k)], buf[2*(start+k)+1]
				vr := buf[2*(start+k+half)]
				vi := buf[2*(start+k+half)+1]
				tr := float32(real(w))*vr - float32(imag(w))*vi
				ti := float32(real(w))*vi + float32(imag(w))*vr
				buf[2*(start+k)] = ur + tr
				buf[2*(start+k)+1] = ui + ti
				buf[2*(start+k+half)] = ur - tr
				buf[2*(start+k+half)+1] = ui - ti
			}
		}
	}
}

func reverseBits(v, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}
