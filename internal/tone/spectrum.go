package tone

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DominantFrequency returns the frequency in hertz with the largest
// magnitude in samples. The peak bin is refined by parabolic interpolation
// over its neighbours. It returns 0 for buffers shorter than two samples.
func DominantFrequency(samples []float32, sampleRate int) float64 {
	n := len(samples)
	if n < 2 || sampleRate <= 0 {
		return 0
	}

	seq := make([]float64, n)
	for i, s := range samples {
		seq[i] = float64(s)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, seq)

	// Skip the DC bin
	peak := 1
	for i := 2; i < len(coeffs); i++ {
		if cmplx.Abs(coeffs[i]) > cmplx.Abs(coeffs[peak]) {
			peak = i
		}
	}

	offset := 0.0
	if peak < len(coeffs)-1 {
		a := cmplx.Abs(coeffs[peak-1])
		b := cmplx.Abs(coeffs[peak])
		c := cmplx.Abs(coeffs[peak+1])
		if denom := a - 2*b + c; denom != 0 {
			offset = 0.5 * (a - c) / denom
		}
	}

	return (float64(peak) + offset) * float64(sampleRate) / float64(n)
}

// Peak returns the largest absolute sample value.
func Peak(samples []float32) float64 {
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(float64(s)))
	}
	return peak
}
