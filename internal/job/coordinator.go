package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/media-saver/internal/dispatch"
	"github.com/ytget/media-saver/internal/engine"
	"github.com/ytget/media-saver/internal/format"
	"github.com/ytget/media-saver/internal/model"
	"github.com/ytget/media-saver/internal/progress"
)

// Sentinel errors for start requests rejected before any work is spawned
var (
	ErrEmptyURL  = errors.New("url is empty")
	ErrJobActive = errors.New("a job is already active")
)

const jobIDPrefix = "job-"

// Callbacks are the four presentation-facing lifecycle hooks. Every one of
// them is invoked through the dispatcher, never from the worker goroutine.
type Callbacks struct {
	OnStatus   func(message string)
	OnProgress func(percent int)
	OnError    func(message string)
	OnComplete func(message string)
}

// Coordinator owns the single in-flight download job: it validates start
// requests, runs the fetch and post-process pipeline on one detached worker
// goroutine, and forwards normalized progress through the dispatcher.
//
// The active flag has exactly two writers and both run on the presentation
// thread: Start, and the dispatched terminal closure. The worker goroutine
// never touches it, so the flag needs no lock.
type Coordinator struct {
	engine     engine.Engine
	dispatcher dispatch.Dispatcher
	callbacks  Callbacks

	active  bool
	current model.Job

	// written only by the worker while a job is active, reset by Start
	lastPercent int
}

// NewCoordinator creates a coordinator for the given engine and dispatcher
func NewCoordinator(eng engine.Engine, d dispatch.Dispatcher, cb Callbacks) *Coordinator {
	if cb.OnStatus == nil {
		cb.OnStatus = func(string) {}
	}
	if cb.OnProgress == nil {
		cb.OnProgress = func(int) {}
	}
	if cb.OnError == nil {
		cb.OnError = func(string) {}
	}
	if cb.OnComplete == nil {
		cb.OnComplete = func(string) {}
	}

	return &Coordinator{
		engine:     eng,
		dispatcher: d,
		callbacks:  cb,
	}
}

// Active reports whether a job is currently in flight
func (c *Coordinator) Active() bool {
	return c.active
}

// Start validates and accepts one download request. It rejects synchronously
// with ErrEmptyURL or ErrJobActive before spawning any work, and returns
// without blocking once the worker is on its way. Rejected requests fire no
// callbacks.
func (c *Coordinator) Start(url, destination string, f model.OutputFormat) error {
	if strings.TrimSpace(url) == "" {
		return ErrEmptyURL
	}
	if c.active {
		return ErrJobActive
	}

	policy, err := format.Resolve(f)
	if err != nil {
		return err
	}

	c.active = true
	c.lastPercent = 0
	c.current = model.Job{
		ID:          newJobID(),
		URL:         url,
		Destination: destination,
		Format:      f,
		StartedAt:   time.Now(),
	}

	log.Printf("Job accepted: id=%s format=%s dest=%s", c.current.ID, f, destination)

	j := c.current
	c.dispatcher.Post(func() {
		c.callbacks.OnProgress(0)
		c.callbacks.OnStatus(fmt.Sprintf("Fetching %s", j.URL))
	})

	go c.run(j, policy)
	return nil
}

// run executes the pipeline on the worker goroutine. It is fire and forget:
// nothing joins it, it holds no locks, and every failure leaves through the
// error callback so the caller of Start never sees a panic or an exception
// from the engine.
func (c *Coordinator) run(j model.Job, policy format.Policy) {
	cfg := engine.Config{
		FormatExpression: policy.FetchExpression,
		OutputPath:       j.Destination,
		Postprocessors:   policy.Postprocessors,
		ProgressHook: func(ev engine.RawEvent) {
			c.forward(j, ev)
		},
		Quiet:      true,
		NoPlaylist: true,
	}

	err := c.engine.Download(context.Background(), j.URL, cfg)
	if err != nil {
		log.Printf("Job failed: id=%s err=%v", j.ID, err)
		msg := fmt.Sprintf("Download failed: %v", err)
		c.dispatcher.Post(func() {
			c.callbacks.OnStatus(msg)
			c.callbacks.OnError(msg)
			c.callbacks.OnProgress(0)
			c.active = false
		})
		return
	}

	log.Printf("Job completed: id=%s dest=%s", j.ID, j.Destination)
	c.dispatcher.Post(func() {
		c.callbacks.OnComplete(fmt.Sprintf("Download complete. Saved to %s", j.Destination))
		c.active = false
	})
}

// forward normalizes one raw engine event and posts the resulting updates.
// Percent never moves backwards within a job, whatever the engine reports.
func (c *Coordinator) forward(j model.Job, ev engine.RawEvent) {
	norm, ok := progress.Normalize(ev, j.Destination)
	if !ok {
		return
	}

	if norm.Phase == model.PhaseFailed {
		// Terminal failure handling (error callback, progress reset, state
		// transition) happens at the worker exit; surface the message only.
		c.dispatcher.Post(func() {
			c.callbacks.OnStatus(norm.Message)
		})
		return
	}

	if norm.Percent < c.lastPercent {
		norm.Percent = c.lastPercent
	}
	c.lastPercent = norm.Percent

	percent := norm.Percent
	message := norm.Message
	c.dispatcher.Post(func() {
		c.callbacks.OnStatus(message)
		c.callbacks.OnProgress(percent)
	})
}

// newJobID generates a unique, time-ordered job ID
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(jobIDPrefix+"%d", time.Now().UnixNano())
	}
	return jobIDPrefix + id.String()
}
