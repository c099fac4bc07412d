package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name       string
		bucket     string
		cdnBaseURL string
		key        string
		want       string
	}{
		{
			name:   "default public host",
			bucket: "media-bucket",
			key:    "abc123-my-song.mp3",
			want:   "https://storage.googleapis.com/media-bucket/abc123-my-song.mp3",
		},
		{
			name:   "spaces in filename are escaped",
			bucket: "media-bucket",
			key:    "1700000000000-album cover.png",
			want:   "https://storage.googleapis.com/media-bucket/1700000000000-album%20cover.png",
		},
		{
			name:   "path separators survive encoding",
			bucket: "media-bucket",
			key:    "artists/user 1/portrait.jpg",
			want:   "https://storage.googleapis.com/media-bucket/artists/user%201/portrait.jpg",
		},
		{
			name:       "cdn override replaces host and bucket",
			bucket:     "media-bucket",
			cdnBaseURL: "https://cdn.example.com/media/",
			key:        "abc123-my-song.mp3",
			want:       "https://cdn.example.com/media/abc123-my-song.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectURL(tt.bucket, tt.cdnBaseURL, tt.key))
		})
	}
}
