package spectral

import (
	"math"
	"testing"
)

func TestNewFFTRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewFFT(60); err == nil {
		t.Fatal("expected error for non-power-of-two size")
	}
	if _, err := NewFFT(3); err == nil {
		t.Fatal("expected error for size 3")
	}
}

func TestFFTRoundTrip(t *testing.T) {
	for _, n := range []int{2, 8, 64, 128, 512} {
		f, err := NewFFT(n)
		if err != nil {
			t.Fatalf("NewFFT(%d): %v", n, err)
		}
		buf := make([]float32, 2*n)
		for i := 0; i < n; i++ {
			buf[2*i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(n) * 3))
		}
		orig := append([]float32(nil), buf...)

		f.Forward(buf)
		f.Inverse(buf)

		for i := range buf {
			if math.Abs(float64(buf[i]-orig[i])) > 1e-3 {
				t.Fatalf("n=%d: round trip mismatch at %d: got %v want %v", n, i, buf[i], orig[i])
			}
		}
	}
}

func TestFFTDCBin(t *testing.T) {
	n := 64
	f, err := NewFFT(n)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		buf[2*i] = 1
	}
	f.Forward(buf)
	if math.Abs(float64(buf[0])-float64(n)) > 1e-3 {
		t.Fatalf("DC bin real = %v, want %v", buf[0], n)
	}
	for k := 1; k < n; k++ {
		if math.Abs(float64(buf[2*k])) > 1e-2 || math.Abs(float64(buf[2*k+1])) > 1e-2 {
			t.Fatalf("bin %d should be ~0, got (%v, %v)", k, buf[2*k], buf[2*k+1])
		}
	}
}
