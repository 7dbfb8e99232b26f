// Package engine wraps the external fetch and media tooling behind a single
// black-box contract: start a job with options, receive heterogeneous
// progress events, get a terminal success or error.
package engine

import (
	"context"

	"github.com/ytget/media-saver/internal/model"
)

// EventStatus tags the shape of a RawEvent
type EventStatus string

const (
	// StatusDownloading carries fetch progress; PercentStr is set
	StatusDownloading EventStatus = "downloading"

	// StatusPostProcessing marks the start of a post-processing step
	StatusPostProcessing EventStatus = "postprocessing"

	// StatusFinished marks successful completion of the whole pipeline
	StatusFinished EventStatus = "finished"

	// StatusError marks a failed pipeline; a terminal error follows
	StatusError EventStatus = "error"
)

// RawEvent is one loosely structured progress report from the engine. Only
// the fields its Status guarantees are meaningful; everything else is best
// effort and must be parsed-or-skipped by the consumer.
type RawEvent struct {
	Status          EventStatus
	PercentStr      string // downloading only, e.g. "42.7%"
	DownloadedBytes int64  // downloading, 0 when unknown
	TotalBytes      int64  // downloading, 0 when unknown
	Filename        string // postprocessing/finished/error, may be empty
}

// Config configures one download invocation
type Config struct {
	FormatExpression string
	OutputPath       string
	Postprocessors   []model.Postprocessor
	ProgressHook     func(RawEvent)
	Quiet            bool
	NoPlaylist       bool
}

// Engine fetches a single media URL and post-processes it into
// cfg.OutputPath. Implementations call cfg.ProgressHook zero or more times
// from the calling goroutine and block until the pipeline ends.
type Engine interface {
	Download(ctx context.Context, url string, cfg Config) error
}
