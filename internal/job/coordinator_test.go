package job

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ytget/media-saver/internal/dispatch"
	"github.com/ytget/media-saver/internal/engine"
	"github.com/ytget/media-saver/internal/format"
	"github.com/ytget/media-saver/internal/model"
)

// fakeEngine replays a scripted event sequence and returns a fixed error
type fakeEngine struct {
	events []engine.RawEvent
	err    error
	calls  int
}

func (f *fakeEngine) Download(ctx context.Context, url string, cfg engine.Config) error {
	f.calls++
	for _, ev := range f.events {
		cfg.ProgressHook(ev)
	}
	return f.err
}

// blockingEngine holds the worker until released
type blockingEngine struct {
	release chan struct{}
}

func (b *blockingEngine) Download(ctx context.Context, url string, cfg engine.Config) error {
	<-b.release
	return nil
}

// recorder captures dispatched callbacks in arrival order
type recorder struct {
	statuses  []string
	progress  []int
	errs      []string
	completes []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnStatus:   func(m string) { r.statuses = append(r.statuses, m) },
		OnProgress: func(p int) { r.progress = append(r.progress, p) },
		OnError:    func(m string) { r.errs = append(r.errs, m) },
		OnComplete: func(m string) { r.completes = append(r.completes, m) },
	}
}

// drainUntil pumps the dispatcher on the test goroutine until cond holds
func drainUntil(t *testing.T, d *dispatch.Serial, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		d.Drain()
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Condition not met before deadline")
}

func TestStart_EmptyURL(t *testing.T) {
	eng := &fakeEngine{}
	d := dispatch.NewSerial(0)
	rec := &recorder{}
	c := NewCoordinator(eng, d, rec.callbacks())

	err := c.Start("", "/tmp/x.mp4", model.FormatVideo)
	if !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("Expected ErrEmptyURL, got %v", err)
	}
	if err := c.Start("   ", "/tmp/x.mp4", model.FormatVideo); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("Expected ErrEmptyURL for blank URL, got %v", err)
	}

	// No worker spawned, no callback fired
	d.Drain()
	if eng.calls != 0 {
		t.Errorf("Expected no engine calls, got %d", eng.calls)
	}
	if len(rec.statuses)+len(rec.progress)+len(rec.errs)+len(rec.completes) != 0 {
		t.Error("Rejected start must fire no callbacks")
	}
	if c.Active() {
		t.Error("Coordinator must stay idle after a rejected start")
	}
}

func TestStart_InvalidFormat(t *testing.T) {
	eng := &fakeEngine{}
	d := dispatch.NewSerial(0)
	c := NewCoordinator(eng, d, Callbacks{})

	err := c.Start("https://example.com/v", "/tmp/x.mp4", model.OutputFormat("Playlist"))
	if !errors.Is(err, format.ErrInvalidFormat) {
		t.Fatalf("Expected ErrInvalidFormat, got %v", err)
	}
	if c.Active() {
		t.Error("Coordinator must stay idle after a rejected start")
	}
}

func TestStart_RejectsSecondJob(t *testing.T) {
	eng := &blockingEngine{release: make(chan struct{})}
	d := dispatch.NewSerial(0)
	rec := &recorder{}
	c := NewCoordinator(eng, d, rec.callbacks())

	if err := c.Start("https://example.com/v", "/tmp/x.mp4", model.FormatVideo); err != nil {
		t.Fatalf("Expected first start to be accepted, got %v", err)
	}
	if !c.Active() {
		t.Fatal("Coordinator should be active after accepted start")
	}

	err := c.Start("https://example.com/w", "/tmp/y.mp4", model.FormatVideo)
	if !errors.Is(err, ErrJobActive) {
		t.Fatalf("Expected ErrJobActive, got %v", err)
	}

	close(eng.release)
	drainUntil(t, d, func() bool { return len(rec.completes) == 1 })

	if c.Active() {
		t.Error("Coordinator should be idle after completion")
	}
}

func TestRun_SuccessFlow(t *testing.T) {
	eng := &fakeEngine{
		events: []engine.RawEvent{
			{Status: engine.StatusDownloading, PercentStr: "50.0%"},
			{Status: engine.StatusPostProcessing, Filename: "/tmp/.fetch-out-a1b2.mp4"},
			{Status: engine.StatusFinished, Filename: "/tmp/out.mp4"},
		},
	}
	d := dispatch.NewSerial(0)
	rec := &recorder{}
	c := NewCoordinator(eng, d, rec.callbacks())

	if err := c.Start("https://example.com/v", "/tmp/out.mp4", model.FormatVideo); err != nil {
		t.Fatalf("Expected accepted start, got %v", err)
	}

	drainUntil(t, d, func() bool { return len(rec.completes) == 1 })

	expected := []int{0, 45, 95, 100}
	if len(rec.progress) != len(expected) {
		t.Fatalf("Expected progress %v, got %v", expected, rec.progress)
	}
	for i, p := range expected {
		if rec.progress[i] != p {
			t.Errorf("Progress[%d] = %d, expected %d", i, rec.progress[i], p)
		}
	}

	// Monotonic and bounded within the job
	for i := 1; i < len(rec.progress); i++ {
		if rec.progress[i] < rec.progress[i-1] {
			t.Errorf("Progress regressed: %v", rec.progress)
		}
		if rec.progress[i] < 0 || rec.progress[i] > 100 {
			t.Errorf("Progress out of bounds: %v", rec.progress)
		}
	}

	if !strings.Contains(rec.completes[0], "/tmp/out.mp4") {
		t.Errorf("Completion message should contain the destination, got %q", rec.completes[0])
	}
	if len(rec.errs) != 0 {
		t.Errorf("Expected no errors, got %v", rec.errs)
	}
	if c.Active() {
		t.Error("Coordinator should be idle after completion")
	}
}

func TestRun_FailureFlow(t *testing.T) {
	eng := &fakeEngine{
		events: []engine.RawEvent{
			{Status: engine.StatusDownloading, PercentStr: "30.0%"},
			{Status: engine.StatusError, Filename: "out.mp3"},
		},
		err: errors.New("network unreachable"),
	}
	d := dispatch.NewSerial(0)
	rec := &recorder{}
	c := NewCoordinator(eng, d, rec.callbacks())

	if err := c.Start("https://example.com/v", "/tmp/out.mp3", model.FormatAudio); err != nil {
		t.Fatalf("Expected accepted start, got %v", err)
	}

	drainUntil(t, d, func() bool { return len(rec.errs) == 1 })
	d.Drain()

	if rec.errs[0] == "" {
		t.Error("Error callback must carry a non-empty message")
	}
	if !strings.Contains(rec.errs[0], "network unreachable") {
		t.Errorf("Error message should carry the cause, got %q", rec.errs[0])
	}

	// Progress is reset to 0 after the error so the bar does not stick
	last := rec.progress[len(rec.progress)-1]
	if last != 0 {
		t.Errorf("Expected final progress 0 after failure, got %d", last)
	}

	if c.Active() {
		t.Fatal("Coordinator should be idle after failure")
	}

	// The user can immediately retry on the same coordinator
	if err := c.Start("https://example.com/v", "/tmp/out.mp3", model.FormatAudio); err != nil {
		t.Errorf("Expected retry to be accepted, got %v", err)
	}
	drainUntil(t, d, func() bool { return len(rec.errs) == 2 })
}

func TestRun_MonotonicClamp(t *testing.T) {
	// The engine restarts its own percentage between streams; the normalized
	// scale must not move backwards.
	eng := &fakeEngine{
		events: []engine.RawEvent{
			{Status: engine.StatusDownloading, PercentStr: "80.0%"},
			{Status: engine.StatusDownloading, PercentStr: "30.0%"},
			{Status: engine.StatusFinished, Filename: "/tmp/out.mp4"},
		},
	}
	d := dispatch.NewSerial(0)
	rec := &recorder{}
	c := NewCoordinator(eng, d, rec.callbacks())

	if err := c.Start("https://example.com/v", "/tmp/out.mp4", model.FormatVideo); err != nil {
		t.Fatalf("Expected accepted start, got %v", err)
	}
	drainUntil(t, d, func() bool { return len(rec.completes) == 1 })

	expected := []int{0, 72, 72, 100}
	if len(rec.progress) != len(expected) {
		t.Fatalf("Expected progress %v, got %v", expected, rec.progress)
	}
	for i, p := range expected {
		if rec.progress[i] != p {
			t.Errorf("Progress[%d] = %d, expected %d", i, rec.progress[i], p)
		}
	}
}
