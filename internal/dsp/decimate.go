package dsp

import (
	"fmt"
	"math"

	"github.com/rjboer/GoFMCW/internal/radar"
)

// tapsPerFactor sets the anti-alias FIR length as a multiple of the
// decimation factor. 16 taps per output sample puts the full Hamming
// transition band below the decimated Nyquist frequency, leaving better
// than 50 dB of stopband rejection there.
const tapsPerFactor = 16

// DecimationFactor returns the integer downsampling ratio from the RF sample
// rate to the target ADC rate: ceil(sampleRate/targetRate).
func DecimationFactor(sampleRate, targetRate float64) int {
	return int(math.Ceil(sampleRate / targetRate))
}

// LowpassFIR designs a Hamming-windowed-sinc low-pass filter with the given
// cutoff frequency. taps should be odd for symmetric group delay; the
// coefficients are normalized to unity DC gain.
func LowpassFIR(cutoffHz, sampleRate float64, taps int) []float64 {
	if taps <= 0 || sampleRate <= 0 {
		return []float64{}
	}
	fc := cutoffHz / sampleRate // cycles per sample
	mid := float64(taps-1) / 2
	win := Hamming(taps)
	h := make([]float64, taps)
	sum := 0.0
	for i := range h {
		x := float64(i) - mid
		var v float64
		if x == 0 {
			v = 2 * fc
		} else {
			v = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}
		h[i] = v * win[i]
		sum += h[i]
	}
	if sum != 0 {
		for i := range h {
			h[i] /= sum
		}
	}
	return h
}

// Decimate low-pass filters x and keeps every factor-th sample, reducing the
// rate from the RF sample rate to the ADC rate. The anti-alias cutoff sits at
// 3/8 of the decimated rate so the stopband edge lands on the new Nyquist
// frequency. The filter's group delay is compensated so output sample m
// aligns with input sample m*factor.
func Decimate(x []complex128, factor int) ([]complex128, error) {
	if factor < 1 {
		return nil, fmt.Errorf("decimate: factor %d must be >= 1: %w", factor, radar.ErrConfig)
	}
	if factor == 1 {
		out := make([]complex128, len(x))
		copy(out, x)
		return out, nil
	}

	taps := tapsPerFactor*factor + 1
	h := LowpassFIR(3.0/(8.0*float64(factor)), 1, taps)
	delay := (taps - 1) / 2

	m := len(x) / factor
	out := make([]complex128, m)
	for i := 0; i < m; i++ {
		center := i*factor + delay
		var acc complex128
		for k := range h {
			j := center - k
			if j < 0 || j >= len(x) {
				continue
			}
			acc += complex(h[k], 0) * x[j]
		}
		out[i] = acc
	}
	return out, nil
}
