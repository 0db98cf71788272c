package sim

import (
	"fmt"

	"github.com/rjboer/GoFMCW/internal/antenna"
	"github.com/rjboer/GoFMCW/internal/dsp"
	"github.com/rjboer/GoFMCW/internal/radar"
)

// Transceiver simulates single radar pulses: chirp synthesis, free-space
// propagation, and the receiver front end. It holds no state across pulses;
// simulations for distinct pulse indices may run concurrently because each
// pulse derives its own noise stream from the partitioned seed.
type Transceiver struct {
	Config        radar.Config
	Pattern       *antenna.Pattern
	RxGainDB      float64
	NoiseFigureDB float64
	Seed          uint64
}

// Pulse holds the raw RF products of one simulated pulse.
type Pulse struct {
	Index       int
	Transmitted []complex128
	Received    []complex128
	Echo        Echo
}

// SimulatePulse runs one pulse against the target and returns the received
// RF samples together with the transmitted waveform and channel truth.
func (t Transceiver) SimulatePulse(tgt radar.Target, pulseIndex int) (Pulse, error) {
	pat := t.Pattern
	if pat == nil {
		pat = antenna.Isotropic(0)
	}

	tx, err := dsp.Chirp(t.Config, float64(pulseIndex)*t.Config.PulseTime)
	if err != nil {
		return Pulse{}, fmt.Errorf("pulse %d: %w", pulseIndex, err)
	}
	propagated, echo, err := Propagate(tx, tgt, pat, t.Config)
	if err != nil {
		return Pulse{}, fmt.Errorf("pulse %d: %w", pulseIndex, err)
	}
	rx := NewReceiver(t.RxGainDB, t.NoiseFigureDB, t.pulseSeed(pulseIndex))
	received := rx.Receive(propagated, t.Config.SampleRate)

	return Pulse{
		Index:       pulseIndex,
		Transmitted: tx,
		Received:    received,
		Echo:        echo,
	}, nil
}

// pulseSeed partitions the base seed across pulse indices so concurrent
// pulses draw from uncorrelated noise streams.
func (t Transceiver) pulseSeed(pulseIndex int) uint64 {
	return t.Seed + uint64(pulseIndex)*0x9e3779b97f4a7c15
}
