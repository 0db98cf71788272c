package sim

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rjboer/GoFMCW/internal/radar"
)

// Receiver applies front-end gain and injects thermal noise referenced to a
// noise figure. Each Receiver owns an independent noise stream so concurrent
// pulses stay uncorrelated; construct one per pulse with a partitioned seed.
type Receiver struct {
	GainDB        float64
	NoiseFigureDB float64
	src           rand.Source
}

// NewReceiver returns a receiver with a deterministic noise stream derived
// from seed.
func NewReceiver(gainDB, noiseFigureDB float64, seed uint64) *Receiver {
	return &Receiver{
		GainDB:        gainDB,
		NoiseFigureDB: noiseFigureDB,
		src:           rand.NewSource(seed),
	}
}

// NoisePower returns the noise-figure-referenced thermal noise power
// k*T0*(F-1)*fs in watts for the given sample rate.
func (r *Receiver) NoisePower(sampleRate float64) float64 {
	f := math.Pow(10, r.NoiseFigureDB/10)
	return radar.Boltzmann * radar.RefTemp * (f - 1) * sampleRate
}

// Receive amplifies the signal and adds complex Gaussian noise whose power
// equals the thermal noise floor, split equally between the I and Q
// components. The input is left untouched.
func (r *Receiver) Receive(signal []complex128, sampleRate float64) []complex128 {
	gain := complex(math.Pow(10, r.GainDB/20), 0)
	sigma := math.Sqrt(r.NoisePower(sampleRate) / 2)

	out := make([]complex128, len(signal))
	if sigma == 0 {
		for i, v := range signal {
			out[i] = v * gain
		}
		return out
	}

	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: r.src}
	for i, v := range signal {
		out[i] = v*gain + complex(noise.Rand(), noise.Rand())
	}
	return out
}
