package model

// OutputFormat selects what the user wants saved: a full video container or
// an audio-only file.
type OutputFormat string

const (
	// FormatVideo saves the best available video plus audio in one container
	FormatVideo OutputFormat = "Video"

	// FormatAudio saves an audio-only file extracted from the best audio stream
	FormatAudio OutputFormat = "Audio"
)

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid returns true if the format is one of the known output formats
func (f OutputFormat) IsValid() bool {
	return f == FormatVideo || f == FormatAudio
}
