package distribute

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type stubHandler struct {
	name  string
	delay time.Duration
	err   error
	calls *atomic.Int32
}

func (s *stubHandler) Name() string { return s.name }

func (s *stubHandler) Upload(ctx context.Context, req Request) error {
	if s.calls != nil {
		s.calls.Add(1)
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.err
}

func TestDistributeKeepsInputOrder(t *testing.T) {
	jobs := []Job{
		{Handler: &stubHandler{name: "a", delay: 30 * time.Millisecond}, Request: Request{VideoPath: "v"}},
		{Handler: &stubHandler{name: "b", err: errors.New("rejected")}, Request: Request{VideoPath: "v"}},
		{Handler: &stubHandler{name: "c"}, Request: Request{VideoPath: "v"}},
	}
	c := NewCoordinator(2, nil)
	outcomes := c.Distribute(context.Background(), jobs)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	want := []struct {
		dest    string
		success bool
	}{{"a", true}, {"b", false}, {"c", true}}
	for i, w := range want {
		if outcomes[i].Destination != w.dest || outcomes[i].Success != w.success {
			t.Fatalf("outcome %d = %+v, want %s/%v", i, outcomes[i], w.dest, w.success)
		}
	}
	if outcomes[1].Error == "" {
		t.Fatal("failed outcome should carry the error text")
	}
}

type concurrencyProbe struct {
	name    string
	current atomic.Int32
	peak    atomic.Int32
}

func (p *concurrencyProbe) Name() string { return p.name }

func (p *concurrencyProbe) Upload(ctx context.Context, req Request) error {
	n := p.current.Add(1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	p.current.Add(-1)
	return nil
}

func TestDistributeBoundsConcurrency(t *testing.T) {
	probe := &concurrencyProbe{name: "probe"}
	jobs := make([]Job, 6)
	for i := range jobs {
		jobs[i] = Job{Handler: probe, Request: Request{VideoPath: "v"}}
	}

	c := NewCoordinator(2, nil)
	c.Distribute(context.Background(), jobs)

	if peak := probe.peak.Load(); peak > 2 {
		t.Fatalf("concurrency peaked at %d, limit is 2", peak)
	}
}

type panicHandler struct{}

func (panicHandler) Name() string { return "flaky" }

func (panicHandler) Upload(ctx context.Context, req Request) error { panic("driver crash") }

func TestDistributeIsolatesPanics(t *testing.T) {
	jobs := []Job{
		{Handler: panicHandler{}, Request: Request{VideoPath: "v"}},
		{Handler: &stubHandler{name: "solid"}, Request: Request{VideoPath: "v"}},
	}
	c := NewCoordinator(2, nil)
	outcomes := c.Distribute(context.Background(), jobs)

	if outcomes[0].Success {
		t.Fatal("panicking handler should fail its own outcome")
	}
	if !outcomes[1].Success {
		t.Fatal("other destinations must be unaffected")
	}
}

func TestDistributeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := &atomic.Int32{}
	jobs := []Job{{Handler: &stubHandler{name: "a", calls: calls}, Request: Request{VideoPath: "v"}}}
	outcomes := NewCoordinator(2, nil).Distribute(ctx, jobs)

	if outcomes[0].Success {
		t.Fatal("cancelled distribution must not report success")
	}
	if calls.Load() != 0 {
		t.Fatal("handler should not run after cancellation")
	}
}

func TestAllSucceeded(t *testing.T) {
	if AllSucceeded(nil) {
		t.Fatal("empty outcomes are not a success")
	}
	if AllSucceeded([]Outcome{{Success: true}, {Success: false}}) {
		t.Fatal("one failure fails the set")
	}
	if !AllSucceeded([]Outcome{{Success: true}, {Success: true}}) {
		t.Fatal("all-success set should pass")
	}
}

func TestSaveResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload_results.json")
	outcomes := []Outcome{
		{Destination: "telegram", Success: true, ElapsedMS: 1500},
		{Destination: "tiktok", Success: false, Error: "profile in use"},
	}
	if err := SaveResults(path, outcomes); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []Outcome
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("results not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Error != "profile in use" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if got := raw[0]["elapsed_ms"].(float64); got != 1500 {
		t.Fatalf("elapsed_ms serialized as %v, want milliseconds", got)
	}
}
