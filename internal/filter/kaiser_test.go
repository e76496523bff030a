package filter

import (
	"math"
	"testing"
)

func TestBesselI0AtZero(t *testing.T) {
	if got := besselI0(0); math.Abs(got-1) > 1e-9 {
		t.Fatalf("besselI0(0) = %v, want 1", got)
	}
}

func TestKaiserBetaPiecewise(t *testing.T) {
	if got := KaiserBeta(15); got != 0 {
		t.Fatalf("KaiserBeta(15) = %v, want 0", got)
	}
	if got := KaiserBeta(60); got <= 0 {
		t.Fatalf("KaiserBeta(60) = %v, want > 0", got)
	}
	if got := KaiserBeta(30); got <= 0 {
		t.Fatalf("KaiserBeta(30) = %v, want > 0", got)
	}
}

func TestKaiserWindowPeakAtCenter(t *testing.T) {
	w := KaiserWindow(65, 6.0)
	if len(w) != 65 {
		t.Fatalf("len(w) = %d, want 65", len(w))
	}
	center := w[32]
	for i, v := range w {
		if v > center+1e-9 {
			t.Fatalf("window[%d] = %v exceeds center %v", i, v, center)
		}
	}
	if math.Abs(center-1) > 1e-6 {
		t.Fatalf("center tap = %v, want ~1", center)
	}
}

func TestKaiserWindowEvenlySymmetric(t *testing.T) {
	n := 64
	w := KaiserWindow(n, 5.0)
	for i := 0; i < n/2; i++ {
		if math.Abs(w[i]-w[n-1-i]) > 1e-9 {
			t.Fatalf("window not symmetric at %d/%d: %v != %v", i, n-1-i, w[i], w[n-1-i])
		}
	}
}

func TestKaiserLowPassNormalizesToUnityDC(t *testing.T) {
	coeffs := KaiserLowPass(1e6, 20e6, 33, 4.0)
	var sum float64
	for _, c := range coeffs {
		sum += float64(c)
	}
	if math.Abs(sum-1) > 1e-3 {
		t.Fatalf("DC gain = %v, want ~1", sum)
	}
}

func TestKaiserLengthIncreasesWithAttenuation(t *testing.T) {
	short := KaiserLength(30, 0.1)
	long := KaiserLength(80, 0.1)
	if long <= short {
		t.Fatalf("KaiserLength(80,...) = %d, want > KaiserLength(30,...) = %d", long, short)
	}
}
