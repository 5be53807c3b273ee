package psc

import (
	"math"
	"testing"
)

// toneFrame returns framesz samples of a sine tone at the given period
// (in samples), continuing the phase from offset.
func toneFrame(framesz, period, offset int) []int16 {
	out := make([]int16, framesz)
	for i := range out {
		phase := 2 * math.Pi * float64(offset+i) / float64(period)
		out[i] = int16(8000 * math.Sin(phase))
	}
	return out
}

func TestNewConcealerPresets(t *testing.T) {
	cvsd, err := NewConcealer(VariantCVSD, Config{})
	if err != nil {
		t.Fatalf("cvsd construct: %v", err)
	}
	if cvsd.FrameSize() != 60 {
		t.Errorf("cvsd framesz = %d, want 60", cvsd.FrameSize())
	}
	if min, max := cvsd.PitchBounds(); min != 40 || max != 120 {
		t.Errorf("cvsd pitch bounds = [%d,%d], want [40,120]", min, max)
	}

	msbc, err := NewConcealer(VariantMSBC, Config{})
	if err != nil {
		t.Fatalf("msbc construct: %v", err)
	}
	if msbc.FrameSize() != 120 {
		t.Errorf("msbc framesz = %d, want 120", msbc.FrameSize())
	}
	if min, max := msbc.PitchBounds(); min != 80 || max != 240 {
		t.Errorf("msbc pitch bounds = [%d,%d], want [80,240]", min, max)
	}
}

func TestNewConcealerRejectsNegativeFadingCount(t *testing.T) {
	if _, err := NewConcealer(VariantCVSD, Config{FadingCount: -1}); err != ErrInvalidFadingCount {
		t.Fatalf("got err %v, want ErrInvalidFadingCount", err)
	}
}

func TestErasureCountTracksGoodAndLostFrames(t *testing.T) {
	c, err := NewConcealer(VariantCVSD, Config{})
	if err != nil {
		t.Fatal(err)
	}

	period := 80
	offset := 0
	for i := 0; i < 6; i++ {
		frame := toneFrame(c.FrameSize(), period, offset)
		offset += c.FrameSize()
		c.AddToHistory(frame)
	}
	if c.ErasureCount() != 0 {
		t.Fatalf("ErasureCount after good frames = %d, want 0", c.ErasureCount())
	}

	out := make([]int16, c.FrameSize())
	c.DoFE(out)
	if c.ErasureCount() != 1 {
		t.Fatalf("ErasureCount after one erasure = %d, want 1", c.ErasureCount())
	}
	c.DoFE(out)
	if c.ErasureCount() != 2 {
		t.Fatalf("ErasureCount after two erasures = %d, want 2", c.ErasureCount())
	}

	resumed := toneFrame(c.FrameSize(), period, offset)
	c.AddToHistory(resumed)
	if c.ErasureCount() != 0 {
		t.Fatalf("ErasureCount did not reset on resumed frame: %d", c.ErasureCount())
	}
}

func TestDoFEOutputStaysInRange(t *testing.T) {
	c, err := NewConcealer(VariantCVSD, Config{AdaptivePitch: true, NonLinearAtten: true})
	if err != nil {
		t.Fatal(err)
	}
	period := 64
	offset := 0
	for i := 0; i < 8; i++ {
		frame := toneFrame(c.FrameSize(), period, offset)
		offset += c.FrameSize()
		c.AddToHistory(frame)
	}

	out := make([]int16, c.FrameSize())
	for i := 0; i < 12; i++ {
		c.DoFE(out)
		for _, s := range out {
			if s < -32768 || s > 32767 {
				t.Fatalf("sample out of int16 range: %d", s)
			}
		}
	}
}

func TestComfortNoiseAfterFadingCount(t *testing.T) {
	c, err := NewConcealer(VariantCVSD, Config{ComfortNoise: true, FadingCount: 3, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	period := 50
	offset := 0
	for i := 0; i < 6; i++ {
		frame := toneFrame(c.FrameSize(), period, offset)
		offset += c.FrameSize()
		c.AddToHistory(frame)
	}

	out := make([]int16, c.FrameSize())
	for i := 0; i < 5; i++ {
		c.DoFE(out)
	}
	// Past FadingCount, comfort noise should not be identically silent.
	nonZero := false
	for _, s := range out {
		if s != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatalf("expected comfort noise output to be non-silent")
	}
}

func TestDeterministicComfortNoise(t *testing.T) {
	run := func(seed int64) []int16 {
		c, err := NewConcealer(VariantCVSD, Config{ComfortNoise: true, FadingCount: 2, Seed: seed})
		if err != nil {
			t.Fatal(err)
		}
		period := 50
		offset := 0
		for i := 0; i < 6; i++ {
			frame := toneFrame(c.FrameSize(), period, offset)
			offset += c.FrameSize()
			c.AddToHistory(frame)
		}
		out := make([]int16, c.FrameSize())
		for i := 0; i < 4; i++ {
			c.DoFE(out)
		}
		result := make([]int16, len(out))
		copy(result, out)
		return result
	}

	a := run(7)
	b := run(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different output at %d: %d vs %d", i, a[i], b[i])
		}
	}
}
