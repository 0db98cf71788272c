// Package telemetry publishes pulse results to external consumers. The core
// pipeline only produces arrays and estimates; rendering is left to whatever
// subscribes here.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Sample captures one processed pulse for visualization.
type Sample struct {
	Timestamp  time.Time `json:"timestamp"`
	PulseIndex int       `json:"pulseIndex"`
	RangeM     float64   `json:"rangeM"`
	BeatFreqHz float64   `json:"beatFreqHz"`
	Status     string    `json:"status"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// SpectrumFrame carries the latest IF spectrum so plotting tools can render
// it without touching the pipeline.
type SpectrumFrame struct {
	PulseIndex   int       `json:"pulseIndex"`
	IFSampleRate float64   `json:"ifSampleRateHz"`
	Freqs        []float64 `json:"freqsHz"`
	Magnitudes   []float64 `json:"magnitudes"`
}

// Reporter captures telemetry events.
type Reporter interface {
	Report(sample Sample)
}

// MultiReporter fans out telemetry to multiple destinations.
type MultiReporter []Reporter

// Report forwards the sample to each configured reporter.
func (m MultiReporter) Report(sample Sample) {
	for _, r := range m {
		if r != nil {
			r.Report(sample)
		}
	}
}

// Hub collects history and fans out updates to subscribers.
type Hub struct {
	mu           sync.RWMutex
	history      []Sample
	historyLimit int
	subscribers  map[chan Sample]struct{}
	spectrum     *SpectrumFrame
}

const defaultHistoryLimit = 500

// NewHub builds a telemetry hub keeping at most historyLimit samples.
func NewHub(historyLimit int) *Hub {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Hub{
		historyLimit: historyLimit,
		subscribers:  make(map[chan Sample]struct{}),
	}
}

// Report implements Reporter and records a new telemetry sample.
func (h *Hub) Report(sample Sample) {
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now()
	}
	h.mu.Lock()
	h.history = append(h.history, sample)
	if len(h.history) > h.historyLimit {
		h.history = h.history[len(h.history)-h.historyLimit:]
	}
	for ch := range h.subscribers {
		select {
		case ch <- sample:
		default:
		}
	}
	h.mu.Unlock()
}

// PublishSpectrum stores the most recent spectrum frame.
func (h *Hub) PublishSpectrum(frame SpectrumFrame) {
	h.mu.Lock()
	h.spectrum = &frame
	h.mu.Unlock()
}

// History returns a copy of stored telemetry samples.
func (h *Hub) History() []Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Sample, len(h.history))
	copy(out, h.history)
	return out
}

// Spectrum returns the latest published spectrum frame, if any.
func (h *Hub) Spectrum() (SpectrumFrame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.spectrum == nil {
		return SpectrumFrame{}, false
	}
	return *h.spectrum, true
}

// Subscribe registers a listener for live updates.
func (h *Hub) Subscribe() (chan Sample, func()) {
	ch := make(chan Sample, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		close(ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) handleHistory(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.History())
}

func (h *Hub) handleSpectrum(w http.ResponseWriter, _ *http.Request) {
	frame, ok := h.Spectrum()
	if !ok {
		http.Error(w, "no spectrum published yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(frame)
}

func (h *Hub) handleLive(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := h.Subscribe()
	defer cancel()

	// send existing history for immediate display
	for _, sample := range h.History() {
		writeEvent(w, sample)
	}
	flusher.Flush()

	for {
		select {
		case sample, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, sample)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, sample Sample) {
	payload, _ := json.Marshal(sample)
	w.Write([]byte("data: "))
	w.Write(payload)
	w.Write([]byte("\n\n"))
}
