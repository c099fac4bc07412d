package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello", "hello"},
		{"spaces", "My Great Song", "my-great-song"},
		{"punctuation runs collapse", "My Song!! (Remix)", "my-song-remix"},
		{"leading and trailing junk", "  --Weird Title--  ", "weird-title"},
		{"digits survive", "Track 01", "track-01"},
		{"only junk", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugifyTitle(tt.title))
		})
	}
}

func TestSongObjectKey(t *testing.T) {
	got := songObjectKey("abc123", "My Song!! (Remix)", "upload.mp3")
	assert.Equal(t, "abc123-my-song-remix.mp3", got)
}

func TestSongObjectKey_NoExtension(t *testing.T) {
	got := songObjectKey("abc123", "Untitled", "rawdata")
	assert.Equal(t, "abc123-untitled.bin", got)
}

func TestCoverObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	got := coverObjectKey(now, "cover.png")
	assert.Equal(t, "1700000000000-cover.png", got)
}

func TestImageObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	got := imageObjectKey("artists", "user-1", now, "portrait.jpg")
	assert.Equal(t, "artists-user-1-1700000000000-portrait.jpg", got)
}

func TestFileExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"song.mp3", "mp3"},
		{"archive.tar.gz", "gz"},
		{"noext", "bin"},
		{"trailingdot.", "bin"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fileExt(tt.filename), "filename %q", tt.filename)
	}
}
