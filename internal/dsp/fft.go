// Package dsp implements the signal-processing stages of the FMCW range
// pipeline: chirp synthesis, dechirp mixing, anti-alias decimation, and
// FFT-based beat frequency estimation.
package dsp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum computes the FFT of the samples and returns the coefficients
// together with their magnitudes. Bin k corresponds to frequency
// k*fs/len(samples) in [0, fs).
func Spectrum(samples []complex128) ([]complex128, []float64) {
	if len(samples) == 0 {
		return []complex128{}, []float64{}
	}
	fft := fourier.NewCmplxFFT(len(samples)).Coefficients(nil, samples)
	mags := make([]float64, len(fft))
	for i, v := range fft {
		mags[i] = cmplx.Abs(v)
	}
	return fft, mags
}

// FFTShift returns the FFT output shifted so that DC is centered.
func FFTShift(data []complex128) []complex128 {
	n := len(data)
	if n == 0 {
		return []complex128{}
	}
	half := n / 2
	shifted := append(data[half:], data[:half]...)
	return shifted
}

// FreqAxis returns the unshifted FFT frequency axis for n bins at the given
// sample rate: f[k] = sampleRate/n * k.
func FreqAxis(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	axis := make([]float64, n)
	step := sampleRate / float64(n)
	for i := range axis {
		axis[i] = step * float64(i)
	}
	return axis
}
