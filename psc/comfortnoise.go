package psc

import "github.com/btsco/scoplc/spectral"

// CNGGainScale attenuates the synthesized comfort noise before it is
// written out, matching both variants' CNG_GAIN_SCALE constant.
const CNGGainScale = 0.2

// next advances the deterministic xorshift64 generator (spec law L2:
// identical Seed plus identical input trace yields identical output).
// math/rand is deliberately avoided here since its global state is not
// under the caller's control.
func (g *comfortNoiseGenerator) next() uint64 {
	x := g.rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.rngState = x
	return x
}

// uniform returns a value uniformly distributed in [-1, 1).
func (g *comfortNoiseGenerator) uniform() float32 {
	v := g.next()
	return float32(v>>40)/float32(1<<24)*2 - 1
}

// updateLPC re-fits the comfort-noise predictor from a just-received
// good frame. Called once per good frame (not during erasures), so the
// coefficients used to color comfort noise always come from the most
// recent real speech, unlike the reference generate_comfort_noise which
// re-analyzes the (at that point still empty) output buffer itself;
// that looks like a reference bug and is not reproduced here.
func (c *Concealer) updateLPC(frame []int16) {
	samples := make([]float64, len(frame))
	for i, s := range frame {
		samples[i] = float64(s)
	}
	autocorr := spectral.Autocorrelate(samples, LPCOrder)
	coeffs, _ := spectral.LevinsonDurbin(autocorr, LPCOrder, LPCOrder, nil)
	for i := 0; i <= LPCOrder && i < len(coeffs); i++ {
		c.cng.lpcCoeff[i] = float32(coeffs[i])
	}
}

// generateComfortNoise synthesizes LPC-colored white noise into out,
// using the full predictor order 1..LPCOrder (the reference's
// noise-filtering loop stops one tap short at LPC_ORDER-1, which looks
// like an off-by-one against its own struct layout and is not
// reproduced here; see apply_perceptual_weight's j<=LPC_ORDER bound for
// the consistent convention).
func (c *Concealer) generateComfortNoise(out []int16) {
	noise := make([]float32, len(out))
	for i := range noise {
		noise[i] = c.cng.uniform() * c.cng.noiseFloor
	}
	for i := range out {
		v := noise[i]
		for j := 1; j <= LPCOrder; j++ {
			if i >= j {
				v += c.cng.lpcCoeff[j] * float32(out[i-j])
			}
		}
		out[i] = saturateInt16(v * CNGGainScale)
	}
}

// recordErasureEnergy stores the current erasure's nominal energy
// sample in the rolling history, mirroring the reference's
// energy_history bookkeeping (kept for parity; the PSC concealer does
// not currently consult this history to make decisions).
func (c *Concealer) recordErasureEnergy(db float32) {
	c.cng.energyHistory[c.cng.histIndex] = db
	c.cng.histIndex = (c.cng.histIndex + 1) % NoiseHistory
}
