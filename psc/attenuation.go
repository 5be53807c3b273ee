package psc

import (
	"math"

	"github.com/btsco/scoplc"
)

// saturateInt16 is the shared clamp-to-int16 helper; psc keeps a local
// name so call sites read the way the C reference's own saturate() does.
func saturateInt16(v float32) int16 {
	return plc.SaturateInt16(v)
}

// scaleSpeech applies the linear gain decay: g starts at
// 1 - (erasecnt-1)*attenfac (floored at 0) and decrements by attenincr
// per sample across the frame, per spec's scale_speech.
func (c *Concealer) scaleSpeech(out []int16) {
	g := 1 - float32(c.erasecnt-1)*c.attenfac
	if g < 0 {
		g = 0
	}
	for i := range out {
		out[i] = saturateInt16(float32(out[i]) * g)
		g -= c.attenincr
	}
}

// nonlinearAttenuation applies the segmented non-linear gain decay with
// harmonic reinforcement (spec's optional non-linear attenuation): a
// gentler piecewise decay than the linear rule, plus an extra 1.1x boost
// on samples that fall in the first quarter of each pitch period.
func nonlinearAttenuation(out []int16, erasecnt, pitch int) {
	var g float32
	if erasecnt <= 5 {
		g = 1 - 0.02*float32(erasecnt)
	} else {
		g = 0.9 * float32(math.Pow(0.88, float64(erasecnt-5)))
	}
	for i := range out {
		sample := float32(out[i]) * g
		if pitch > 0 && i%pitch < pitch/4 {
			sample *= 1.1
		}
		out[i] = saturateInt16(sample)
	}
}
