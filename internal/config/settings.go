package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/media-saver/internal/model"
	"github.com/ytget/media-saver/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeySaveDir            = "save_directory"
	KeyOutputFormat       = "output_format"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultOutputFormat       = model.FormatVideo
	DefaultAutoRevealComplete = false
	FallbackSaveDir           = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetSaveDirectory returns the directory the save dialog opens in
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackSaveDir
		}
		s.SetSaveDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSaveDirectory sets the save directory
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDir, dir)
}

// GetOutputFormat returns the preferred output format. A stored value
// outside the known enum falls back to the default.
func (s *Settings) GetOutputFormat() model.OutputFormat {
	stored := model.OutputFormat(s.app.Preferences().String(KeyOutputFormat))
	if !stored.IsValid() {
		s.SetOutputFormat(DefaultOutputFormat)
		return DefaultOutputFormat
	}
	return stored
}

// SetOutputFormat sets the preferred output format
func (s *Settings) SetOutputFormat(f model.OutputFormat) {
	if !f.IsValid() {
		f = DefaultOutputFormat
	}
	s.app.Preferences().SetString(KeyOutputFormat, f.String())
}

// GetOutputFormatOptions returns the selectable output formats
func (s *Settings) GetOutputFormatOptions() []model.OutputFormat {
	return []model.OutputFormat{model.FormatVideo, model.FormatAudio}
}

// GetAutoRevealOnComplete returns whether to reveal the saved file when a
// download finishes
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal finished downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}
