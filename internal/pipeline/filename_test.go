package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestBuildFilenameDeterministic(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	a := BuildFilename("Spring", "Sunrise", "framed room", now)
	b := BuildFilename("Spring", "Sunrise", "framed room", now.Add(2*time.Hour))
	if a != b {
		t.Fatalf("same-day filenames differ: %q vs %q", a, b)
	}
	want := "AG_Spring_Sunrise_2025-03-14_MOCKUP_framed_room.png"
	if a != want {
		t.Fatalf("filename = %q, want %q", a, want)
	}
}

func TestBuildFilenameReplacesTypeSpaces(t *testing.T) {
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	got := BuildFilename("c", "t", "poster  on   wall", now)
	if !strings.HasSuffix(got, "_MOCKUP_poster_on_wall.png") {
		t.Fatalf("type spaces not collapsed to underscores: %q", got)
	}
}

func TestBuildFilenameNoPathSeparators(t *testing.T) {
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	got := BuildFilename("col/lec", "ti\\tle", "mu/g", now)
	if strings.ContainsAny(got, "/\\") {
		t.Fatalf("filename leaks path separators: %q", got)
	}
}

func TestBuildFilenameFoldsDiacritics(t *testing.T) {
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	got := BuildFilename("Été", "Café", "mug", now)
	if strings.Contains(got, "é") || strings.Contains(got, "É") {
		t.Fatalf("diacritics not folded: %q", got)
	}
	if !strings.Contains(got, "Ete") || !strings.Contains(got, "Cafe") {
		t.Fatalf("unexpected folding result: %q", got)
	}
}
