package model

import "time"

// Job is an immutable snapshot of one accepted download request
type Job struct {
	ID          string
	URL         string
	Destination string // absolute path chosen by the user
	Format      OutputFormat
	StartedAt   time.Time
}

// ProgressEvent is a normalized progress update ready for UI rendering.
// Percent is on a single 0-100 scale across both pipeline phases.
type ProgressEvent struct {
	Phase   Phase
	Percent int
	Message string
}

// PostprocessorKind classifies a post-download processing step
type PostprocessorKind string

const (
	// PostprocessRemux repackages fetched streams into the target container
	// without re-encoding
	PostprocessRemux PostprocessorKind = "Remux"

	// PostprocessExtractAudio transcodes the fetched audio stream into the
	// target audio codec
	PostprocessExtractAudio PostprocessorKind = "ExtractAudio"
)

// Postprocessor describes one processing step the engine runs after the fetch
type Postprocessor struct {
	Kind      PostprocessorKind
	Container string // Remux target container, e.g. "mp4"
	Codec     string // ExtractAudio target codec, e.g. "mp3"
	Bitrate   string // ExtractAudio target bitrate, e.g. "192k"
}
