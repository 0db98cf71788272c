package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHubHistoryLimit(t *testing.T) {
	hub := NewHub(3)
	for i := 0; i < 5; i++ {
		hub.Report(Sample{PulseIndex: i})
	}
	history := hub.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(history))
	}
	if history[0].PulseIndex != 2 || history[2].PulseIndex != 4 {
		t.Fatalf("expected samples 2..4, got %d..%d", history[0].PulseIndex, history[2].PulseIndex)
	}
	for _, s := range history {
		if s.Timestamp.IsZero() {
			t.Fatalf("report should stamp samples without a timestamp")
		}
	}
}

func TestHubSubscribe(t *testing.T) {
	hub := NewHub(10)
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Report(Sample{PulseIndex: 7, RangeM: 1.5, Status: "ok"})

	select {
	case sample := <-ch:
		if sample.PulseIndex != 7 || sample.RangeM != 1.5 {
			t.Fatalf("unexpected sample %+v", sample)
		}
	case <-time.After(time.Second):
		t.Fatalf("no sample delivered to subscriber")
	}
}

func TestHubSpectrum(t *testing.T) {
	hub := NewHub(10)
	if _, ok := hub.Spectrum(); ok {
		t.Fatalf("fresh hub should have no spectrum")
	}
	hub.PublishSpectrum(SpectrumFrame{PulseIndex: 2, Freqs: []float64{0, 1}, Magnitudes: []float64{3, 4}})
	frame, ok := hub.Spectrum()
	if !ok {
		t.Fatalf("expected a published spectrum")
	}
	if frame.PulseIndex != 2 || len(frame.Magnitudes) != 2 {
		t.Fatalf("unexpected frame %+v", frame)
	}
}

func TestHandleHistory(t *testing.T) {
	hub := NewHub(10)
	hub.Report(Sample{PulseIndex: 0, RangeM: 2.5, Status: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rr := httptest.NewRecorder()
	hub.handleHistory(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp []Sample
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].RangeM != 2.5 {
		t.Fatalf("unexpected history %+v", resp)
	}
}

func TestHandleSpectrum(t *testing.T) {
	hub := NewHub(10)

	req := httptest.NewRequest(http.MethodGet, "/api/spectrum", nil)
	rr := httptest.NewRecorder()
	hub.handleSpectrum(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any spectrum, got %d", rr.Code)
	}

	hub.PublishSpectrum(SpectrumFrame{PulseIndex: 1, IFSampleRate: 3e7, Magnitudes: []float64{1, 2, 3}})
	rr = httptest.NewRecorder()
	hub.handleSpectrum(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp SpectrumFrame
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IFSampleRate != 3e7 || len(resp.Magnitudes) != 3 {
		t.Fatalf("unexpected frame %+v", resp)
	}
}

func TestMultiReporterFanout(t *testing.T) {
	a := NewHub(10)
	b := NewHub(10)
	m := MultiReporter{a, nil, b}
	m.Report(Sample{PulseIndex: 1})
	if len(a.History()) != 1 || len(b.History()) != 1 {
		t.Fatalf("fanout incomplete: %d/%d", len(a.History()), len(b.History()))
	}
}
