package progress

import (
	"strings"
	"testing"

	"github.com/ytget/media-saver/internal/engine"
	"github.com/ytget/media-saver/internal/model"
)

func TestNormalize_FetchStaging(t *testing.T) {
	tests := []struct {
		percentStr string
		expected   int
	}{
		{"0%", 0},
		{"50.0%", 45},
		{"100.0%", 90},
		{"150%", 90},  // clamped before scaling
		{"-10%", 0},   // clamped before scaling
		{" 42.7% ", 38},
	}

	for _, test := range tests {
		ev := engine.RawEvent{Status: engine.StatusDownloading, PercentStr: test.percentStr}
		result, ok := Normalize(ev, "/tmp/out.mp4")
		if !ok {
			t.Fatalf("Normalize(%q) was suppressed, expected event", test.percentStr)
		}
		if result.Phase != model.PhaseFetching {
			t.Errorf("Normalize(%q) phase = %s, expected Fetching", test.percentStr, result.Phase)
		}
		if result.Percent != test.expected {
			t.Errorf("Normalize(%q) percent = %d, expected %d", test.percentStr, result.Percent, test.expected)
		}
	}
}

func TestNormalize_MalformedPercentSuppressed(t *testing.T) {
	for _, bad := range []string{"", "N/A", "abc%", "%"} {
		ev := engine.RawEvent{Status: engine.StatusDownloading, PercentStr: bad}
		if _, ok := Normalize(ev, "/tmp/out.mp4"); ok {
			t.Errorf("Normalize(%q) should be suppressed", bad)
		}
	}
}

func TestNormalize_FetchMessageWithSizes(t *testing.T) {
	ev := engine.RawEvent{
		Status:          engine.StatusDownloading,
		PercentStr:      "50.0%",
		DownloadedBytes: 12000000,
		TotalBytes:      24000000,
	}
	result, ok := Normalize(ev, "/tmp/out.mp4")
	if !ok {
		t.Fatal("Expected event, got suppression")
	}
	if !strings.Contains(result.Message, "12 MB") || !strings.Contains(result.Message, "24 MB") {
		t.Errorf("Expected humanized sizes in message, got %q", result.Message)
	}
}

func TestNormalize_PostProcessing(t *testing.T) {
	ev := engine.RawEvent{Status: engine.StatusPostProcessing, Filename: "/tmp/.fetch-out-a1b2.mp4"}
	result, ok := Normalize(ev, "/tmp/out.mp4")
	if !ok {
		t.Fatal("Expected event, got suppression")
	}
	if result.Phase != model.PhasePostProcessing {
		t.Errorf("Expected PostProcessing phase, got %s", result.Phase)
	}
	// Fixed floor regardless of sub-progress
	if result.Percent != 95 {
		t.Errorf("Expected percent 95, got %d", result.Percent)
	}
}

func TestNormalize_Finished(t *testing.T) {
	// The engine's reported filename must not leak into the message; the
	// user-chosen destination is authoritative.
	ev := engine.RawEvent{Status: engine.StatusFinished, Filename: "/tmp/out.webm"}
	result, ok := Normalize(ev, "/tmp/out.mp4")
	if !ok {
		t.Fatal("Expected event, got suppression")
	}
	if result.Phase != model.PhaseDone {
		t.Errorf("Expected Done phase, got %s", result.Phase)
	}
	if result.Percent != 100 {
		t.Errorf("Expected percent 100, got %d", result.Percent)
	}
	if !strings.Contains(result.Message, "/tmp/out.mp4") {
		t.Errorf("Expected message to contain destination, got %q", result.Message)
	}
	if strings.Contains(result.Message, "/tmp/out.webm") {
		t.Errorf("Message must not use the engine-reported path, got %q", result.Message)
	}
}

func TestNormalize_Error(t *testing.T) {
	ev := engine.RawEvent{Status: engine.StatusError, Filename: "out.mp4"}
	result, ok := Normalize(ev, "/tmp/out.mp4")
	if !ok {
		t.Fatal("Expected event, got suppression")
	}
	if result.Phase != model.PhaseFailed {
		t.Errorf("Expected Failed phase, got %s", result.Phase)
	}
	if !strings.Contains(result.Message, "out.mp4") {
		t.Errorf("Expected message to carry the filename, got %q", result.Message)
	}

	// No filename available: placeholder keeps the message readable
	ev = engine.RawEvent{Status: engine.StatusError}
	result, ok = Normalize(ev, "/tmp/out.mp4")
	if !ok {
		t.Fatal("Expected event, got suppression")
	}
	if !strings.Contains(result.Message, UnknownMediaName) {
		t.Errorf("Expected placeholder in message, got %q", result.Message)
	}
}

func TestNormalize_UnknownStatusSuppressed(t *testing.T) {
	ev := engine.RawEvent{Status: engine.EventStatus("paused")}
	if _, ok := Normalize(ev, "/tmp/out.mp4"); ok {
		t.Error("Unknown status should be suppressed")
	}
}
