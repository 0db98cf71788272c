package radar

import (
	"fmt"
	"math"
)

// Physical constants shared by the simulation.
const (
	SpeedOfLight = 299792458.0 // m/s
	Boltzmann    = 1.380649e-23
	RefTemp      = 290.0 // receiver reference temperature, K
)

// Config holds the sweep timing and sampling parameters of the radar.
// Construct through NewConfig; a validated Config is treated as immutable
// for the lifetime of a simulation session.
type Config struct {
	StartFreq  float64 // sweep start frequency, Hz
	Bandwidth  float64 // swept bandwidth, Hz
	PulseTime  float64 // chirp period, s
	SampleRate float64 // RF simulation sample rate, Hz
}

// NewConfig validates the parameters and returns a ready-to-use Config.
func NewConfig(startFreq, bandwidth, pulseTime, sampleRate float64) (Config, error) {
	cfg := Config{
		StartFreq:  startFreq,
		Bandwidth:  bandwidth,
		PulseTime:  pulseTime,
		SampleRate: sampleRate,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the parameters against their physical constraints.
func (c Config) Validate() error {
	if c.StartFreq < 0 {
		return fmt.Errorf("start frequency %g Hz is negative: %w", c.StartFreq, ErrConfig)
	}
	if c.Bandwidth <= 0 {
		return fmt.Errorf("bandwidth %g Hz must be positive: %w", c.Bandwidth, ErrConfig)
	}
	if c.PulseTime <= 0 {
		return fmt.Errorf("pulse time %g s must be positive: %w", c.PulseTime, ErrConfig)
	}
	if c.SampleRate <= 2*c.Bandwidth {
		return fmt.Errorf("sample rate %g Hz must exceed twice the swept bandwidth %g Hz: %w",
			c.SampleRate, c.Bandwidth, ErrConfig)
	}
	return nil
}

// PRF returns the pulse repetition frequency in Hz.
func (c Config) PRF() float64 { return 1 / c.PulseTime }

// Slope returns the chirp sweep rate in Hz/s.
func (c Config) Slope() float64 { return c.Bandwidth / c.PulseTime }

// NumSamples returns the number of samples materialized for one pulse.
func (c Config) NumSamples() int { return int(math.Round(c.PulseTime * c.SampleRate)) }

// RangeResolution returns the minimum distinguishable target separation in
// meters, set by the swept bandwidth.
func (c Config) RangeResolution() float64 { return SpeedOfLight / (2 * c.Bandwidth) }

// MaxBeatRange returns the largest unambiguous range in meters for the given
// IF bandwidth. Beat tones beyond the IF band wrap back into it.
func (c Config) MaxBeatRange(ifBandwidth float64) float64 {
	return ifBandwidth * SpeedOfLight / (2 * c.Slope())
}

// BeatFrequency returns the IF beat frequency produced by a round-trip delay.
func (c Config) BeatFrequency(delay float64) float64 { return c.Slope() * delay }
