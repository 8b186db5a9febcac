package adapters

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
)

func TestLocalArtifactStore_SaveResolveRoundTrip(t *testing.T) {
	store := NewLocalArtifactStore(filepath.Join(t.TempDir(), "audio"))

	audio := []byte("fake mp3 payload")
	filename, err := store.Save(audio, "job_42_abc", "Morning Show!")
	if err != nil {
		t.Fatal("Save failed:", err)
	}
	if filename != "Morning_Show__job_42_abc.mp3" {
		t.Errorf("filename = %q", filename)
	}

	path, size, err := store.Resolve("job_42_abc")
	if err != nil {
		t.Fatal("Resolve failed:", err)
	}
	if size != int64(len(audio)) {
		t.Errorf("size = %d, expected %d", size, len(audio))
	}

	stored, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("reading resolved artifact failed:", err)
	}
	if !bytes.Equal(stored, audio) {
		t.Error("stored bytes differ from saved bytes")
	}
}

func TestLocalArtifactStore_ResolveNotFound(t *testing.T) {
	store := NewLocalArtifactStore(t.TempDir())

	_, _, err := store.Resolve("job_missing")
	if !errors.Is(err, outbound.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestLocalArtifactStore_ResolveNotFoundWhenDirAbsent(t *testing.T) {
	store := NewLocalArtifactStore(filepath.Join(t.TempDir(), "never-created"))

	_, _, err := store.Resolve("job_1_a")
	if !errors.Is(err, outbound.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestLocalArtifactStore_ResolveIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalArtifactStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "notes_job_1_a.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := store.Resolve("job_1_a")
	if !errors.Is(err, outbound.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound for non-mp3 match, got %v", err)
	}
}
