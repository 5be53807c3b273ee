package psc

import "testing"

func TestSaturateInt16(t *testing.T) {
	cases := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{40000, 32767},
		{-40000, -32768},
		{100.4, 100},
	}
	for _, c := range cases {
		if got := saturateInt16(c.in); got != c.want {
			t.Errorf("saturateInt16(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestScaleSpeechDecaysAcrossErasures(t *testing.T) {
	c, err := NewConcealer(VariantCVSD, Config{})
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int16, c.FrameSize())
	for i := range out {
		out[i] = 10000
	}

	c.erasecnt = 1
	c.scaleSpeech(out)
	if out[0] != 10000 {
		t.Errorf("first erasure should leave gain near 1: got %d", out[0])
	}

	for i := range out {
		out[i] = 10000
	}
	c.erasecnt = c.cfg.FadingCount
	c.scaleSpeech(out)
	if out[len(out)-1] >= 10000 {
		t.Errorf("gain should have decayed well below 1 by the last fading frame: %d", out[len(out)-1])
	}
}

func TestNonlinearAttenuationReinforcesHarmonics(t *testing.T) {
	out := make([]int16, 40)
	for i := range out {
		out[i] = 1000
	}
	pitch := 8
	nonlinearAttenuation(out, 1, pitch)

	// Samples within the first quarter of a pitch period get the 1.1x
	// boost; samples in the remainder do not, so the boosted ones should
	// be strictly louder at the same base gain.
	boosted := out[0]
	unboosted := out[pitch/2]
	if boosted <= unboosted {
		t.Errorf("expected harmonic-reinforced sample %d to exceed unboosted sample %d", boosted, unboosted)
	}
}

func TestNonlinearAttenuationDecaysWithErasures(t *testing.T) {
	early := make([]int16, 20)
	late := make([]int16, 20)
	for i := range early {
		early[i] = 10000
		late[i] = 10000
	}
	nonlinearAttenuation(early, 1, 0)
	nonlinearAttenuation(late, 20, 0)

	if late[0] >= early[0] {
		t.Errorf("later erasure should have smaller gain: early=%d late=%d", early[0], late[0])
	}
}
