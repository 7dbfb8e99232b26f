// Package progress converts raw engine events into normalized progress
// events on a single staged 0-100 scale. The engine reports fetching and
// post-processing as separate, non-uniform phases; the fixed 90/95/100
// staging keeps the progress bar monotonic and non-jumpy across both.
package progress

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ytget/media-saver/internal/engine"
	"github.com/ytget/media-saver/internal/model"
)

// Staging constants. The fetch phase never visually reaches 100, reserving
// headroom for post-processing, which has no finer granularity of its own.
const (
	FetchCeiling       = 0.9
	PostProcessPercent = 95
	DonePercent        = 100
)

// Fallback identifier for error messages when the engine reports no filename
const UnknownMediaName = "media file"

// Normalize converts one raw engine event into a normalized progress event.
// The boolean is false when the event should be suppressed; malformed percent
// data is cosmetic only and is never escalated. The finished message is built
// from the stored destination, not from any path the engine reports, since
// post-processing may have rewritten the extension the engine knows about.
func Normalize(ev engine.RawEvent, destination string) (model.ProgressEvent, bool) {
	switch ev.Status {
	case engine.StatusDownloading:
		pct, err := parsePercent(ev.PercentStr)
		if err != nil {
			return model.ProgressEvent{}, false
		}
		scaled := int(pct * FetchCeiling)
		return model.ProgressEvent{
			Phase:   model.PhaseFetching,
			Percent: scaled,
			Message: fetchMessage(ev),
		}, true

	case engine.StatusPostProcessing:
		return model.ProgressEvent{
			Phase:   model.PhasePostProcessing,
			Percent: PostProcessPercent,
			Message: "Post-processing media...",
		}, true

	case engine.StatusFinished:
		return model.ProgressEvent{
			Phase:   model.PhaseDone,
			Percent: DonePercent,
			Message: fmt.Sprintf("Saved to %s", destination),
		}, true

	case engine.StatusError:
		name := ev.Filename
		if name == "" {
			name = UnknownMediaName
		}
		return model.ProgressEvent{
			Phase:   model.PhaseFailed,
			Percent: 0,
			Message: fmt.Sprintf("Download failed for %s", name),
		}, true

	default:
		return model.ProgressEvent{}, false
	}
}

// parsePercent parses a raw percent string like "42.7%" and clamps the
// result to [0, 100]. Raw engine data is untrusted.
func parsePercent(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	pct, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}

// fetchMessage builds the status line for a fetch-phase event
func fetchMessage(ev engine.RawEvent) string {
	if ev.TotalBytes > 0 {
		return fmt.Sprintf("Fetching... %s of %s",
			humanize.Bytes(uint64(ev.DownloadedBytes)), humanize.Bytes(uint64(ev.TotalBytes)))
	}
	return fmt.Sprintf("Fetching... %s", strings.TrimSpace(ev.PercentStr))
}
