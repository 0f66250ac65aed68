package monitor

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Outcome is how a submission ended
type Outcome string

const (
	OutcomeSucceeded  Outcome = "succeeded"
	OutcomeFailed     Outcome = "failed"
	OutcomeSuperseded Outcome = "superseded"
)

// Tracker accumulates per-submission metrics over a long-running command
type Tracker struct {
	started    time.Time
	submitted  *Counter
	succeeded  *Counter
	failed     *Counter
	superseded *Counter
	uploaded   *Counter
	latency    *Timer
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		started:    time.Now(),
		submitted:  NewCounter("submitted"),
		succeeded:  NewCounter("succeeded"),
		failed:     NewCounter("failed"),
		superseded: NewCounter("superseded"),
		uploaded:   NewCounter("uploaded_bytes"),
		latency:    NewTimer("latency"),
	}
}

// Record adds one finished submission of size bytes that took d
func (t *Tracker) Record(outcome Outcome, size int, d time.Duration) {
	t.submitted.Inc()
	t.uploaded.Add(int64(size))

	switch outcome {
	case OutcomeSucceeded:
		t.succeeded.Inc()
	case OutcomeFailed:
		t.failed.Inc()
	case OutcomeSuperseded:
		t.superseded.Inc()
		// the response was never shown
		return
	}
	t.latency.Record(d)
}

// Stats is a point-in-time copy of a tracker
type Stats struct {
	Submitted     int64         `json:"submitted"`
	Succeeded     int64         `json:"succeeded"`
	Failed        int64         `json:"failed"`
	Superseded    int64         `json:"superseded"`
	UploadedBytes int64         `json:"uploaded_bytes"`
	AvgLatency    time.Duration `json:"avg_latency_ns"`
	MinLatency    time.Duration `json:"min_latency_ns"`
	MaxLatency    time.Duration `json:"max_latency_ns"`
	Uptime        time.Duration `json:"uptime_ns"`
}

// Stats returns the current values
func (t *Tracker) Stats() Stats {
	return Stats{
		Submitted:     t.submitted.Get(),
		Succeeded:     t.succeeded.Get(),
		Failed:        t.failed.Get(),
		Superseded:    t.superseded.Get(),
		UploadedBytes: t.uploaded.Get(),
		AvgLatency:    t.latency.AvgTime(),
		MinLatency:    t.latency.MinTime(),
		MaxLatency:    t.latency.MaxTime(),
		Uptime:        time.Since(t.started),
	}
}

// String renders the stats as a single line for logs
func (s Stats) String() string {
	return fmt.Sprintf("%d submitted (%d succeeded, %d failed, %d superseded), %s uploaded, avg %s",
		s.Submitted, s.Succeeded, s.Failed, s.Superseded,
		humanize.IBytes(uint64(s.UploadedBytes)), // #nosec G115
		s.AvgLatency.Round(time.Millisecond))
}
