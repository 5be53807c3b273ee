// Package lph implements the LPC/Pitch Hybrid Concealer (C2): an
// alternative to psc that predicts a lost frame from two independent
// candidate signals, an LPC synthesis and a pitch-period copy, mixed
// by a weight that shifts toward the pitch copy as a loss burst grows.
// An optional FFT-based psychoacoustic post-filter and comfort-noise
// generator are available but disabled by default, matching the
// reference pipeline.
package lph

import (
	"math"

	"github.com/btsco/scoplc"
)

const (
	MinLPCOrder = 4
	MaxLPCOrder = 12

	PitchMin = 20
	PitchMax = 160

	CrossfadeLen = 10

	// CNGGainScale attenuates comfort noise before it is added to frame,
	// matching the reference's CNG_GAIN_SCALE.
	CNGGainScale = 0.2
)

// AudioFrame holds one frame's PCM plus the analysis results a
// concealer needs to carry forward into the next lost frame.
type AudioFrame struct {
	PCM         []int16
	LPCCoeffs   []float32
	Order       int
	PitchPeriod int
	IsUnvoiced  bool
	Energy      float32
}

// NewAudioFrame allocates an AudioFrame sized for framesz samples.
func NewAudioFrame(framesz int) *AudioFrame {
	return &AudioFrame{
		PCM:       make([]int16, framesz),
		LPCCoeffs: make([]float32, MaxLPCOrder+1),
	}
}

// Config enumerates the optional post-processing stages, both disabled
// by default to match the reference pipeline (its noise_shaping and
// add_comfort_noise calls in conceal_lost_frame are guarded by #if 0).
type Config struct {
	NoiseShaping bool
	ComfortNoise bool

	// Seed seeds AddComfortNoise's phase generator. Two concealers
	// constructed with the same Seed and driven with the same input
	// trace produce bit-identical output (spec L2).
	Seed int64
}

// Concealer runs the LPC/pitch hybrid algorithm for one stream. Unlike
// psc.Concealer it keeps no signal memory of its own (only framesz, the
// config and the comfort-noise PRNG state): the per-stream history,
// previous pitch and previous energy live in the caller-owned
// AudioFrame passed to ConcealLostFrame.
type Concealer struct {
	cfg      Config
	framesz  int
	rngState uint64
}

// NewConcealer constructs a Concealer for the given frame size (60 at
// 8 kHz, 120 at 16 kHz).
func NewConcealer(framesz int, cfg Config) (*Concealer, error) {
	if framesz <= 0 || framesz > 512 {
		return nil, ErrFrameSizeInvalid
	}
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &Concealer{cfg: cfg, framesz: framesz, rngState: seed}, nil
}

// nextRandom advances the deterministic xorshift64 generator used for
// comfort-noise phases (spec law L2); math/rand's global state is
// deliberately avoided since it is not under the caller's control.
func (c *Concealer) nextRandom() uint64 {
	x := c.rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	c.rngState = x
	return x
}

// uniformPhase returns a phase uniformly distributed in [0, 2*pi).
func (c *Concealer) uniformPhase() float64 {
	v := c.nextRandom()
	return float64(v>>40) / float64(1<<24) * 2 * math.Pi
}

// FrameSize returns the configured frame size.
func (c *Concealer) FrameSize() int { return c.framesz }

// AnalyzeGoodFrame updates history's derived fields (voicing, energy,
// pitch period) from a just-received good frame, so the next
// ConcealLostFrame call has an up-to-date analysis to extrapolate from.
// Callers must call this once per good frame; it is the LPH analogue
// of psc's AddToHistory.
func (c *Concealer) AnalyzeGoodFrame(history *AudioFrame, frame []int16) {
	copy(history.PCM, frame)
	var flatness float32
	history.IsUnvoiced = IsUnvoiced(history.PCM, &flatness)
	history.Energy = frameEnergy(history.PCM)
	history.PitchPeriod = FindPitchPeriod(history.PCM, history.PitchPeriod)
	coeffs, order := ComputeLPC(history.PCM, history.IsUnvoiced)
	copy(history.LPCCoeffs, coeffs)
	history.Order = order
}

// ConcealLostFrame synthesizes framesz samples into output from the
// most recent good frame's analysis, per spec section 4.2. lossCount
// is the 1-based index of this lost frame within its erasure burst (1
// for the first loss after a good frame).
func (c *Concealer) ConcealLostFrame(output []int16, history *AudioFrame, lossCount int) {
	var flatness float32
	isUnvoiced := IsUnvoiced(history.PCM, &flatness)

	decay := float32(1.0)
	for i := 0; i < lossCount; i++ {
		decay *= 0.9
	}
	predictedEnergy := history.Energy * decay

	coeffs, order := ComputeLPC(history.PCM, isUnvoiced)
	pitch := FindPitchPeriod(history.PCM, history.PitchPeriod)

	n := c.framesz
	lpcSynth := make([]float32, n)
	for i := 0; i < n; i++ {
		var pred float32
		for k := 1; k <= order; k++ {
			if i-k >= 0 {
				pred += coeffs[k] * float32(history.PCM[i-k])
			}
		}
		lpcSynth[i] = pred
	}

	pitchCopy := make([]float32, n)
	for i := 0; i < n; i++ {
		idx := ((i-pitch)%n + n) % n
		pitchCopy[i] = float32(history.PCM[idx])
	}

	wVoiced := float32(0.3)
	if isUnvoiced {
		wVoiced = 0.7
	}
	w := wVoiced - 0.1*float32(lossCount)
	if w < 0.2 {
		w = 0.2
	} else if w > 0.8 {
		w = 0.8
	}

	mixed := make([]float32, n)
	var mixedEnergy float32
	for i := 0; i < n; i++ {
		mixed[i] = w*lpcSynth[i] + (1-w)*pitchCopy[i]
		mixedEnergy += mixed[i] * mixed[i]
	}
	mixedEnergy /= float32(n)

	scale := float32(1)
	if mixedEnergy > 1e-6 {
		scale = sqrt32(predictedEnergy / mixedEnergy)
	}
	if scale > 4 {
		scale = 4
	}
	for i := 0; i < n; i++ {
		output[i] = saturateInt16(mixed[i] * scale)
	}

	crossfadeLen := CrossfadeLen
	if crossfadeLen > n {
		crossfadeLen = n
	}
	if crossfadeLen > 0 {
		tailStart := n - crossfadeLen
		incr := float32(1) / float32(crossfadeLen)
		rw := float32(0)
		for i := 0; i < crossfadeLen; i++ {
			lw := 1 - rw
			blended := lw*float32(history.PCM[tailStart+i]) + rw*float32(output[i])
			output[i] = saturateInt16(blended)
			rw += incr
		}
	}

	if c.cfg.NoiseShaping {
		NoiseShaping(output)
	}
	if c.cfg.ComfortNoise {
		c.AddComfortNoise(output, history)
	}
}

func frameEnergy(pcm []int16) float32 {
	var sum float32
	for _, s := range pcm {
		v := float32(s)
		sum += v * v
	}
	return sum / float32(len(pcm))
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// saturateInt16 is the shared clamp-to-int16 helper; lph keeps a local
// name so call sites read the way the C reference's own saturate() does.
func saturateInt16(v float32) int16 {
	return plc.SaturateInt16(v)
}
