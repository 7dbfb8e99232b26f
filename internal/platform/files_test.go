package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected directory to exist, got %v", err)
	}

	// Idempotent on an existing directory
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Expected no error for existing directory, got %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	dir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasSuffix(dir, "Downloads") {
		t.Errorf("Expected path ending in Downloads, got %s", dir)
	}
}

func TestResolveExistingFile(t *testing.T) {
	if _, err := resolveExistingFile(""); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := resolveExistingFile(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("Expected error for missing file")
	}

	existing := filepath.Join(t.TempDir(), "out.mp4")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	resolved, err := resolveExistingFile(existing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !filepath.IsAbs(resolved) {
		t.Errorf("Expected absolute path, got %s", resolved)
	}
}
