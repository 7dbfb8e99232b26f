// Package format maps the user-facing output format choice to the backend
// fetch expression, the post-processing pipeline, and the save-dialog
// defaults. It is the single place in the app that branches on the format.
package format

import (
	"errors"
	"fmt"

	"github.com/ytget/media-saver/internal/model"
)

// Fetch expressions. Alternatives separated by "/" are tried in priority
// order by the engine: preferred container streams first, then the best
// combined stream, finally any best stream.
const (
	VideoFetchExpression = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	AudioFetchExpression = "bestaudio/best"
)

// Post-processing targets
const (
	VideoContainer = "mp4"
	AudioCodec     = "mp3"
	AudioBitrate   = "192k"
)

// Default destination extensions
const (
	VideoExtension = ".mp4"
	AudioExtension = ".mp3"
)

// ErrInvalidFormat is returned by Resolve for a format outside the known enum
var ErrInvalidFormat = errors.New("invalid output format")

// Filter pairs a save-dialog label with its file name pattern
type Filter struct {
	Label   string
	Pattern string
}

// Policy is the resolved format-dependent configuration for one job
type Policy struct {
	FetchExpression  string
	Postprocessors   []model.Postprocessor
	DefaultExtension string
	FileFilters      []Filter
}

// Resolve returns the policy entry for the given output format. The mapping
// is static and deterministic; repeated calls yield identical entries.
func Resolve(f model.OutputFormat) (Policy, error) {
	switch f {
	case model.FormatVideo:
		return Policy{
			FetchExpression: VideoFetchExpression,
			Postprocessors: []model.Postprocessor{
				{Kind: model.PostprocessRemux, Container: VideoContainer},
			},
			DefaultExtension: VideoExtension,
			FileFilters: []Filter{
				{Label: "MP4 video", Pattern: "*.mp4"},
				{Label: "All files", Pattern: "*.*"},
			},
		}, nil
	case model.FormatAudio:
		return Policy{
			FetchExpression: AudioFetchExpression,
			Postprocessors: []model.Postprocessor{
				{Kind: model.PostprocessExtractAudio, Codec: AudioCodec, Bitrate: AudioBitrate},
			},
			DefaultExtension: AudioExtension,
			FileFilters: []Filter{
				{Label: "MP3 audio", Pattern: "*.mp3"},
				{Label: "All files", Pattern: "*.*"},
			},
		}, nil
	default:
		return Policy{}, fmt.Errorf("%w: %q", ErrInvalidFormat, f)
	}
}
