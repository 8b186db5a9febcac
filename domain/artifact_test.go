package domain

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugifyTitle_Total(t *testing.T) {
	slugPattern := regexp.MustCompile(`^[A-Za-z0-9_]*$`)

	titles := []string{
		"",
		"My Podcast",
		"zażółć gęślą jaźń",
		"a/b\\c:d*e?f\"g<h>i|j",
		strings.Repeat("x", 200),
		"🎙️ weekly show #42",
	}

	for _, title := range titles {
		slug := SlugifyTitle(title)
		if !slugPattern.MatchString(slug) {
			t.Errorf("SlugifyTitle(%q) = %q contains characters outside [A-Za-z0-9_]", title, slug)
		}
		if len(slug) > 50 {
			t.Errorf("SlugifyTitle(%q) has length %d > 50", title, len(slug))
		}
		if slug == "" {
			t.Errorf("SlugifyTitle(%q) produced an empty slug", title)
		}
	}
}

func TestSlugifyTitle_Idempotent(t *testing.T) {
	titles := []string{"My Podcast", "", strings.Repeat("é", 80), "already_clean_42"}
	for _, title := range titles {
		once := SlugifyTitle(title)
		twice := SlugifyTitle(once)
		if once != twice {
			t.Errorf("SlugifyTitle not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestArtifactFilename(t *testing.T) {
	name := ArtifactFilename("Hi", "job_1_a")
	if name != "Hi_job_1_a.mp3" {
		t.Errorf("ArtifactFilename = %q, expected Hi_job_1_a.mp3", name)
	}
	if !strings.HasSuffix(name, "_job_1_a.mp3") {
		t.Errorf("ArtifactFilename %q does not end with _job_1_a.mp3", name)
	}
}

func TestArtifactFilename_EmptyTitleUsesPlaceholder(t *testing.T) {
	name := ArtifactFilename("", "job_1_a")
	if name != "podcast_job_1_a.mp3" {
		t.Errorf("ArtifactFilename with empty title = %q", name)
	}
}
