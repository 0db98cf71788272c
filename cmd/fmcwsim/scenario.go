package main

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/rjboer/GoFMCW/internal/antenna"
	"github.com/rjboer/GoFMCW/internal/radar"
)

// scenario describes the targets and antenna pattern of one simulation run.
// Without a scenario file a single boresight target at 1 m is simulated
// through an isotropic antenna.
type scenario struct {
	Targets []radar.Target `yaml:"targets"`
	Antenna *antennaSpec   `yaml:"antenna"`
}

// antennaSpec is the YAML form of a gain table. gain_db rows correspond to
// azimuth samples, columns to elevation samples; use -.inf to mask a
// direction.
type antennaSpec struct {
	AzimuthsDeg   []float64   `yaml:"azimuths_deg"`
	ElevationsDeg []float64   `yaml:"elevations_deg"`
	GainDB        [][]float64 `yaml:"gain_db"`
	PhaseRad      [][]float64 `yaml:"phase_rad"`
}

func loadScenario(path string) (scenario, error) {
	if path == "" {
		return defaultScenario(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var s scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(s.Targets) == 0 {
		return scenario{}, fmt.Errorf("scenario %s declares no targets", path)
	}
	return s, nil
}

func defaultScenario() scenario {
	return scenario{
		Targets: []radar.Target{{Position: radar.Vec3{X: 1}}},
	}
}

// pattern converts the antenna spec into a lookup table, or an isotropic
// pattern when the scenario omits one.
func (s scenario) pattern() (*antenna.Pattern, error) {
	if s.Antenna == nil {
		return antenna.Isotropic(0), nil
	}
	a := s.Antenna
	gain, err := gridToDense(a.GainDB, len(a.AzimuthsDeg), len(a.ElevationsDeg), "gain_db")
	if err != nil {
		return nil, err
	}
	var phase *mat.Dense
	if a.PhaseRad != nil {
		phase, err = gridToDense(a.PhaseRad, len(a.AzimuthsDeg), len(a.ElevationsDeg), "phase_rad")
		if err != nil {
			return nil, err
		}
	}
	return antenna.New(a.AzimuthsDeg, a.ElevationsDeg, gain, phase)
}

func gridToDense(rows [][]float64, wantRows, wantCols int, name string) (*mat.Dense, error) {
	if len(rows) != wantRows {
		return nil, fmt.Errorf("%s has %d rows, want %d", name, len(rows), wantRows)
	}
	data := make([]float64, 0, wantRows*wantCols)
	for i, row := range rows {
		if len(row) != wantCols {
			return nil, fmt.Errorf("%s row %d has %d columns, want %d", name, i, len(row), wantCols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(wantRows, wantCols, data), nil
}
