package lph

import (
	"math"

	"github.com/btsco/scoplc/spectral"
)

// windowEpsilon guards the inverse-windowing division: the Hanning
// window is exactly zero at both endpoints, so frame samples where it
// does not exceed windowEpsilon are left at their pre-shaping value
// instead of being divided by zero. The window spans the padded FFT
// length, so for a 60- or 120-sample frame only sample 0 is affected.
const windowEpsilon = 1e-6

// NoiseShaping is the optional psychoacoustic post-filter: it windows
// frame, computes a per-Bark-band masking threshold, clamps any FFT
// bin whose magnitude exceeds its band's threshold, and resynthesizes.
// Disabled by default (spec section 9's resolution of the #if 0'd
// reference post-stage); callers opt in via Config.NoiseShaping.
func NoiseShaping(frame []int16) {
	n := nextPowerOfTwo(len(frame))
	fft, err := spectral.NewFFT(n)
	if err != nil {
		return
	}
	window := spectral.HanningWindow(n)

	original := make([]float32, len(frame))
	for i, s := range frame {
		original[i] = float32(s)
	}

	buf := make([]float32, n*2)
	for i := 0; i < len(frame) && i < n; i++ {
		buf[2*i] = (float32(frame[i]) / 32768) * window[i]
	}
	fft.Forward(buf)

	bandEnergy := bandEnergyFromSpectrum(buf, n)
	thresholds := spectral.MaskingThresholds(bandEnergy)

	half := n / 2
	for k := 0; k < half; k++ {
		hz := float64(k) * 8000 / float64(n)
		band := spectral.GetBarkBand(hz)
		re := buf[2*k]
		im := buf[2*k+1]
		mag := float32(math.Sqrt(float64(re*re + im*im)))
		threshold := float32(thresholds[band])
		if mag > threshold && mag > 0 {
			scale := threshold / mag
			buf[2*k] *= scale
			buf[2*k+1] *= scale
			mirror := n - k
			if mirror < n && mirror != k {
				buf[2*mirror] *= scale
				buf[2*mirror+1] *= scale
			}
		}
	}

	fft.Inverse(buf)

	for i := 0; i < len(frame); i++ {
		if i >= n {
			continue
		}
		w := window[i]
		var sample float32
		if w > windowEpsilon {
			sample = (buf[2*i] / w) * 32768
		} else {
			sample = original[i]
		}
		frame[i] = saturateInt16(sample)
	}
}

func bandEnergyFromSpectrum(buf []float32, n int) [spectral.NumBarkBands]float64 {
	var sums [spectral.NumBarkBands]float64
	var counts [spectral.NumBarkBands]int
	half := n / 2
	for k := 0; k < half; k++ {
		hz := float64(k) * 8000 / float64(n)
		band := spectral.GetBarkBand(hz)
		re := float64(buf[2*k])
		im := float64(buf[2*k+1])
		sums[band] += re*re + im*im
		counts[band]++
	}
	var energy [spectral.NumBarkBands]float64
	for b := 0; b < spectral.NumBarkBands; b++ {
		if counts[b] > 0 {
			energy[b] = sums[b] / float64(counts[b])
		}
	}
	return energy
}

// AddComfortNoise synthesizes Bark-band-matched noise from history's
// LPC residual spectrum and adds it to frame, scaled by CNGGainScale.
// Intended for unvoiced or long erasures; disabled by default like
// NoiseShaping.
func (c *Concealer) AddComfortNoise(frame []int16, history *AudioFrame) {
	n := nextPowerOfTwo(len(frame))
	fft, err := spectral.NewFFT(n)
	if err != nil {
		return
	}

	residual := make([]float32, n)
	order := history.Order
	for i := 0; i < len(history.PCM) && i < n; i++ {
		pred := float32(0)
		for k := 1; k <= order; k++ {
			if i-k >= 0 {
				pred += history.LPCCoeffs[k] * float32(history.PCM[i-k])
			}
		}
		residual[i] = float32(history.PCM[i]) - pred
	}

	buf := make([]float32, n*2)
	for i, v := range residual {
		buf[2*i] = v / 32768
	}
	fft.Forward(buf)

	bandEnergy := bandEnergyFromSpectrum(buf, n)

	half := n / 2
	noiseBuf := make([]float32, n*2)
	for k := 0; k < half; k++ {
		hz := float64(k) * 8000 / float64(n)
		band := spectral.GetBarkBand(hz)
		mag := float32(math.Sqrt(bandEnergy[band]))
		phase := c.uniformPhase()
		noiseBuf[2*k] = mag * float32(math.Cos(phase))
		noiseBuf[2*k+1] = mag * float32(math.Sin(phase))
		mirror := n - k
		if mirror < n && mirror != k {
			noiseBuf[2*mirror] = noiseBuf[2*k]
			noiseBuf[2*mirror+1] = -noiseBuf[2*k+1]
		}
	}

	fft.Inverse(noiseBuf)

	for i := range frame {
		if i >= n {
			continue
		}
		noise := noiseBuf[2*i] * 32768 * CNGGainScale
		frame[i] = saturateInt16(float32(frame[i]) + noise)
	}
}
