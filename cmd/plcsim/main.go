// Command plcsim drives psc.Concealer over a synthesized test signal
// and a loss mask, printing frame-by-frame RMS error against the
// undropped ground truth.
//
// It does not decode real SCO packets or read WAV files: file I/O, the
// CVSD/mSBC codecs, and packet-loss simulation over a real transport
// are treated as external collaborators, referenced only by interface.
// This tool exists only to exercise the concealer end-to-end with an
// in-process signal generator and loss mask rather than real audio
// files.
//
// Usage:
//
//	plcsim -signal sine -freq 400 -rate 8000 -frames 20 -loss 3,4,5,6
//	plcsim -signal sine -rate 16000 -loss 3,4,5,6 -adaptive
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/btsco/scoplc/psc"
)

func main() {
	signal := flag.String("signal", "sine", "Signal type: sine, silence")
	freq := flag.Float64("freq", 400, "Sine frequency in Hz")
	amp := flag.Float64("amp", 10000, "Sine amplitude")
	rate := flag.Int("rate", 8000, "Sample rate: 8000 or 16000")
	frames := flag.Int("frames", 20, "Number of frames to simulate")
	lossList := flag.String("loss", "", "Comma-separated 0-based frame indices to drop")
	adaptive := flag.Bool("adaptive", false, "Enable adaptive pitch search")
	comfortNoise := flag.Bool("comfort-noise", false, "Enable LPC comfort noise")
	nonlinear := flag.Bool("nonlinear-atten", false, "Enable non-linear attenuation")
	fadingCount := flag.Int("fading-count", 10, "Erasure count up to which lost frames are synthesized before silence/noise")
	flag.Parse()

	variant := psc.VariantCVSD
	if *rate == 16000 {
		variant = psc.VariantMSBC
	} else if *rate != 8000 {
		log.Fatalf("unsupported rate %d: must be 8000 or 16000", *rate)
	}

	cfg := psc.Config{
		AdaptivePitch:  *adaptive,
		ComfortNoise:   *comfortNoise,
		NonLinearAtten: *nonlinear,
		FadingCount:    *fadingCount,
	}
	c, err := psc.NewConcealer(variant, cfg)
	if err != nil {
		log.Fatalf("construct concealer: %v", err)
	}

	lossSet := parseLossSet(*lossList)

	framesz := c.FrameSize()
	truth := generateSignal(*signal, *frames*framesz, *rate, *freq, *amp)

	fmt.Printf("=== plcsim: %s signal, %d Hz, %d frames, variant=%v ===\n", *signal, *rate, *frames, variant)
	fmt.Printf("%-6s %-6s %10s %8s\n", "frame", "lost", "rms-err", "erasecnt")

	out := make([]int16, framesz)
	for f := 0; f < *frames; f++ {
		frameTruth := truth[f*framesz : (f+1)*framesz]

		var reference []int16
		if lossSet[f] {
			c.DoFE(out)
			reference = frameTruth
		} else {
			copy(out, frameTruth)
			delayed := c.AddToHistory(out)
			copy(out, delayed)
			reference = delayedTruth(truth, f, framesz, c)
		}

		rms := rmsError(out, reference)
		fmt.Printf("%-6d %-6v %10.2f %8d\n", f, lossSet[f], rms, c.ErasureCount())
	}
}

func parseLossSet(spec string) map[int]bool {
	set := map[int]bool{}
	if spec == "" {
		return set
	}
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			log.Fatalf("invalid loss index %q: %v", tok, err)
		}
		set[n] = true
	}
	return set
}

// generateSignal synthesizes n int16 samples of the requested type.
func generateSignal(kind string, n, rate int, freq, amp float64) []int16 {
	out := make([]int16, n)
	switch kind {
	case "sine":
		for i := 0; i < n; i++ {
			t := float64(i) / float64(rate)
			v := amp * math.Sin(2*math.Pi*freq*t)
			out[i] = int16(v)
		}
	case "silence":
		// already zero
	default:
		log.Fatalf("unknown signal type: %s", kind)
	}
	return out
}

// delayedTruth returns the poverlapmax-delayed ground-truth window
// AddToHistory's return value should be compared against, matching the
// identity law in spec section 8 (L1).
func delayedTruth(truth []int16, frame, framesz int, c *psc.Concealer) []int16 {
	_, max := c.PitchBounds()
	delay := max / 4
	start := frame*framesz - delay
	if start < 0 {
		return make([]int16, framesz)
	}
	end := start + framesz
	if end > len(truth) {
		end = len(truth)
	}
	window := make([]int16, framesz)
	copy(window, truth[start:end])
	return window
}

func rmsError(a, b []int16) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(a)))
}
