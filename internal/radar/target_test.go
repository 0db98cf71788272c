package radar

import (
	"math"
	"testing"
)

func TestTargetGeometry(t *testing.T) {
	tgt := Target{Position: Vec3{X: 3, Y: 4, Z: 0}}
	if got := tgt.Range(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("range: expected 5 got %g", got)
	}
	wantAz := math.Atan2(4, 3) * 180 / math.Pi
	if got := tgt.Azimuth(); math.Abs(got-wantAz) > 1e-9 {
		t.Fatalf("azimuth: expected %g got %g", wantAz, got)
	}
	if got := tgt.Elevation(); math.Abs(got) > 1e-12 {
		t.Fatalf("elevation in plane: expected 0 got %g", got)
	}

	up := Target{Position: Vec3{X: 0, Y: 0, Z: 2}}
	if got := up.Elevation(); math.Abs(got-90) > 1e-9 {
		t.Fatalf("zenith elevation: expected 90 got %g", got)
	}
}

func TestRadialVelocity(t *testing.T) {
	receding := Target{Position: Vec3{X: 10}, Velocity: Vec3{X: 5}}
	if got := receding.RadialVelocity(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("receding: expected 5 got %g", got)
	}
	closing := Target{Position: Vec3{X: 10}, Velocity: Vec3{X: -5}}
	if got := closing.RadialVelocity(); math.Abs(got+5) > 1e-12 {
		t.Fatalf("closing: expected -5 got %g", got)
	}
	tangential := Target{Position: Vec3{X: 10}, Velocity: Vec3{Y: 5}}
	if got := tangential.RadialVelocity(); math.Abs(got) > 1e-12 {
		t.Fatalf("tangential: expected 0 got %g", got)
	}
	origin := Target{Velocity: Vec3{X: 5}}
	if got := origin.RadialVelocity(); got != 0 {
		t.Fatalf("origin: expected 0 got %g", got)
	}
}

func TestDopplerSign(t *testing.T) {
	closing := Target{Position: Vec3{X: 100}, Velocity: Vec3{X: -50}}
	want := 2 * -50.0 * 1e9 / SpeedOfLight
	if got := closing.Doppler(1e9); math.Abs(got-want) > 1e-9 {
		t.Fatalf("doppler: expected %g got %g", want, got)
	}
}

func TestEstimateDetected(t *testing.T) {
	if (Estimate{Status: StatusNoTarget}).Detected() {
		t.Fatalf("no_target should not count as detected")
	}
	if !(Estimate{Status: StatusOK}).Detected() {
		t.Fatalf("ok should count as detected")
	}
	if !(Estimate{Status: StatusAliased}).Detected() {
		t.Fatalf("aliased should count as detected")
	}
}
