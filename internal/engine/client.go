package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ytget/ytdlp/v2"
)

// Staging file constants
const (
	StagingPrefix   = ".fetch-"
	StagingIDLength = 8
)

var extFilterRegex = regexp.MustCompile(`\[ext=([a-z0-9]+)\]`)

// Client implements Engine using the ytget downloader for the network fetch
// and ffmpeg for post-processing. The fetch lands in a hidden staging file
// next to the destination; post-processing produces the final file and the
// staging artifact is removed on every exit path.
type Client struct {
	runner commandRunner
}

// NewClient creates a new engine client
func NewClient() *Client {
	return &Client{runner: &execRunner{}}
}

// Download runs the fetch and post-process pipeline for one URL
func (c *Client) Download(ctx context.Context, url string, cfg Config) error {
	hook := cfg.ProgressHook
	if hook == nil {
		hook = func(RawEvent) {}
	}

	fetchPath := cfg.OutputPath
	if len(cfg.Postprocessors) > 0 {
		fetchPath = stagingPath(cfg.OutputPath)
		defer os.Remove(fetchPath)
	}

	if err := c.fetch(ctx, url, cfg, fetchPath, hook); err != nil {
		hook(RawEvent{Status: StatusError, Filename: filepath.Base(cfg.OutputPath)})
		return err
	}

	for _, pp := range cfg.Postprocessors {
		hook(RawEvent{Status: StatusPostProcessing, Filename: fetchPath})
		if !cfg.Quiet {
			log.Printf("Post-processing: kind=%s input=%s output=%s", pp.Kind, fetchPath, cfg.OutputPath)
		}
		if err := c.postprocess(ctx, pp, fetchPath, cfg.OutputPath); err != nil {
			hook(RawEvent{Status: StatusError, Filename: filepath.Base(cfg.OutputPath)})
			return err
		}
	}

	hook(RawEvent{Status: StatusFinished, Filename: cfg.OutputPath})
	return nil
}

// fetch retrieves the raw media stream into path, reporting progress
func (c *Client) fetch(ctx context.Context, url string, cfg Config, path string, hook func(RawEvent)) error {
	quality, ext := selectorFromExpression(cfg.FormatExpression)

	dl := ytdlp.New().
		WithFormat(quality, ext).
		WithOutputPath(path).
		WithProgress(func(p ytdlp.Progress) {
			hook(RawEvent{
				Status:          StatusDownloading,
				PercentStr:      fmt.Sprintf("%.1f%%", p.Percent),
				DownloadedBytes: p.DownloadedSize,
				TotalBytes:      p.TotalSize,
			})
		})

	// NoPlaylist is implicit: the downloader resolves exactly one video per
	// invocation regardless of playlist parameters in the URL.
	info, err := dl.Download(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	if !cfg.Quiet && info != nil {
		log.Printf("Fetch finished: title=%q path=%s", info.Title, path)
	}
	return nil
}

// selectorFromExpression reduces a fetch expression to the quality and
// extension pair the ytget downloader understands. The expression's first
// alternative carries the intent; a bracket filter names the container.
func selectorFromExpression(expr string) (quality, ext string) {
	primary := expr
	if i := strings.Index(primary, "/"); i >= 0 {
		primary = primary[:i]
	}

	quality = "best"
	if strings.HasPrefix(primary, "bestaudio") {
		quality = "bestaudio"
	}

	if m := extFilterRegex.FindStringSubmatch(primary); len(m) > 1 {
		ext = m[1]
	}
	return quality, ext
}

// stagingPath derives the hidden intermediate file the fetch writes to.
// A short random suffix keeps retries from colliding with leftovers.
func stagingPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:StagingIDLength]
	return filepath.Join(dir, StagingPrefix+name+"-"+id+ext)
}
