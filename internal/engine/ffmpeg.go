package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ytget/media-saver/internal/model"
)

// FFmpeg constants for post-processing
const (
	FFmpegCommand = "ffmpeg"

	// Remux: lossless stream copy into the destination container
	StreamCopyCodec = "copy"
	FastStartFlag   = "+faststart"

	// ExtractAudio codec names by target
	MP3Encoder = "libmp3lame"

	// Error reporting
	StderrTailLines = 5
)

// commandResult is an internal process execution response
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec
type execRunner struct{}

// Run executes one command and captures stdout/stderr and exit code
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}

// postprocess runs one ffmpeg step turning inputPath into outputPath.
// A partial output file is removed on failure.
func (c *Client) postprocess(ctx context.Context, pp model.Postprocessor, inputPath, outputPath string) error {
	args, err := postprocessArgs(pp, inputPath, outputPath)
	if err != nil {
		return err
	}

	result, err := c.runner.Run(ctx, FFmpegCommand, args...)
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("%s %s failed (exit=%d): %s",
			FFmpegCommand, pp.Kind, result.ExitCode, stderrTail(result.Stderr))
	}
	return nil
}

// postprocessArgs builds the ffmpeg argument list for one processing step
func postprocessArgs(pp model.Postprocessor, inputPath, outputPath string) ([]string, error) {
	switch pp.Kind {
	case model.PostprocessRemux:
		return []string{
			"-y",
			"-i", inputPath,
			"-c:v", StreamCopyCodec,
			"-c:a", StreamCopyCodec,
			"-movflags", FastStartFlag,
			outputPath,
		}, nil
	case model.PostprocessExtractAudio:
		encoder, err := audioEncoder(pp.Codec)
		if err != nil {
			return nil, err
		}
		return []string{
			"-y",
			"-i", inputPath,
			"-vn",
			"-c:a", encoder,
			"-b:a", pp.Bitrate,
			outputPath,
		}, nil
	default:
		return nil, fmt.Errorf("unknown postprocessor kind: %s", pp.Kind)
	}
}

// audioEncoder maps a target codec name to the ffmpeg encoder name
func audioEncoder(codec string) (string, error) {
	switch codec {
	case "mp3":
		return MP3Encoder, nil
	case "aac":
		return "aac", nil
	default:
		return "", fmt.Errorf("unsupported audio codec: %s", codec)
	}
}

// stderrTail keeps the last few stderr lines for human-readable errors
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) > StderrTailLines {
		lines = lines[len(lines)-StderrTailLines:]
	}
	return strings.Join(lines, " | ")
}
