// Package filter builds the 1-D low-pass filter coefficient sets the
// Demodulate stage binds as a texture, and the time-offset correction
// those filters contribute to the beamforming equation.
package filter

import "math"

// besselI0 evaluates the zeroth-order modified Bessel function of the
// first kind via its power series, the same approximation named in
// "Discrete-Time Signal Processing" (Oppenheim) for the Kaiser window.
// The series converges quickly for the |x| encountered by audio/RF
// filter design (x = beta, typically < 20), so the sum stops once a
// term falls below 1e-16 of the running total, after at most 32 terms.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	halfX := x / 2
	for k := 1; k < 32; k++ {
		term *= (halfX / float64(k)) * (halfX / float64(k))
		sum += term
		if term < sum*1e-16 {
			break
		}
	}
	return sum
}

// KaiserBeta selects the Kaiser window shape parameter beta from a
// target stopband attenuation A (in dB), following the formula
// reproduced in beamformer_create_kaiser_low_pass_filter's header
// comment:
//
//	β = 0.1102(A - 8.7)                              if 50 <  A
//	β = 0.5842 * (A - 21)^0.4 + 0.07886(A − 21)      if 21 <= A <= 50
//	β = 0                                            if       A <  21
func KaiserBeta(attenuationDB float64) float64 {
	switch {
	case attenuationDB > 50:
		return 0.1102 * (attenuationDB - 8.7)
	case attenuationDB >= 21:
		return 0.5842*math.Pow(attenuationDB-21, 0.4) + 0.07886*(attenuationDB-21)
	default:
		return 0
	}
}

// KaiserLength estimates the minimum filter length satisfying a
// transition-band width (stopband minus passband angular frequency, in
// radians/sample) at stopband attenuation A, per the same reference:
//
//	M = (A - 8) / (2.285 * transitionWidth)
func KaiserLength(attenuationDB, transitionWidth float64) int {
	if transitionWidth <= 0 {
		return 0
	}
	m := (attenuationDB - 8) / (2.285 * transitionWidth)
	length := int(math.Ceil(m))
	if length < 1 {
		length = 1
	}
	return length
}

// KaiserWindow returns the length-n Kaiser window with shape parameter
// beta, centered so window[n/2] is the peak.
func KaiserWindow(n int, beta float64) []float64 {
	if n <= 0 {
		return nil
	}
	w := make([]float64, n)
	denom := besselI0(beta)
	m := float64(n - 1)
	for i := range w {
		ratio := (2*float64(i) - m) / m
		arg := beta * math.Sqrt(1-ratio*ratio)
		w[i] = besselI0(arg) / denom
	}
	return w
}

// sinc is the normalized sinc function used to build the ideal
// low-pass impulse response before windowing.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// KaiserLowPass builds a length-n FIR low-pass filter with cutoff
// frequency cutoffHz at samplingFrequencyHz, windowed by a Kaiser
// window with shape parameter beta. Coefficients are returned in
// time-domain order, matching kaiser_low_pass_filter's output layout.
func KaiserLowPass(cutoffHz, samplingFrequencyHz float64, n int, beta float64) []float32 {
	if n <= 0 {
		return nil
	}
	window := KaiserWindow(n, beta)
	fc := 2 * cutoffHz / samplingFrequencyHz // normalized cutoff, fraction of Nyquist
	m := float64(n-1) / 2
	coeffs := make([]float32, n)
	var sum float64
	for i := 0; i < n; i++ {
		t := float64(i) - m
		h := fc * sinc(fc*t)
		v := h * window[i]
		coeffs[i] = float32(v)
		sum += v
	}
	if sum != 0 {
		for i := range coeffs {
			coeffs[i] = float32(float64(coeffs[i]) / sum)
		}
	}
	return coeffs
}
