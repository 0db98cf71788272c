package sim

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/rjboer/GoFMCW/internal/radar"
)

func TestSimulatePulseNoiseless(t *testing.T) {
	cfg, err := radar.NewConfig(1e6, 1e6, 1e-4, 8e6)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	trx := Transceiver{Config: cfg, RxGainDB: 0, NoiseFigureDB: 0, Seed: 1}
	tgt := radar.Target{Position: radar.Vec3{X: 30}}

	pulse, err := trx.SimulatePulse(tgt, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pulse.Index != 0 {
		t.Fatalf("index %d, expected 0", pulse.Index)
	}
	n := cfg.NumSamples()
	if len(pulse.Transmitted) != n || len(pulse.Received) != n {
		t.Fatalf("lengths %d/%d, expected %d", len(pulse.Transmitted), len(pulse.Received), n)
	}
	if cmplx.Abs(pulse.Transmitted[0]-1) > 1e-12 {
		t.Fatalf("transmitted pulse should start at zero phase, got %v", pulse.Transmitted[0])
	}
	wantDelay := 2 * 30.0 / radar.SpeedOfLight
	if math.Abs(pulse.Echo.Delay-wantDelay)/wantDelay > 1e-12 {
		t.Fatalf("delay %g, expected %g", pulse.Echo.Delay, wantDelay)
	}
}

func TestSimulatePulseNoiseDeterminism(t *testing.T) {
	cfg, err := radar.NewConfig(1e6, 1e6, 1e-4, 8e6)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	trx := Transceiver{Config: cfg, RxGainDB: 20, NoiseFigureDB: 10, Seed: 99}
	tgt := radar.Target{Position: radar.Vec3{X: 30}}

	a, err := trx.SimulatePulse(tgt, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := trx.SimulatePulse(tgt, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a.Received {
		if a.Received[i] != b.Received[i] {
			t.Fatalf("sample %d differs across identical pulses: %v vs %v", i, a.Received[i], b.Received[i])
		}
	}

	c, err := trx.SimulatePulse(tgt, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	same := true
	for i := range a.Received {
		if a.Received[i] != c.Received[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("distinct pulse indices drew identical noise")
	}
}
