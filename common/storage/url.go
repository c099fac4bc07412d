package storage

import (
	"net/url"
	"strings"
)

const publicHost = "https://storage.googleapis.com"

// objectURL builds the public URL for an object key. The key is
// percent-encoded one path segment at a time so separators survive
// while spaces and special characters in filenames do not leak into
// the URL unencoded.
func objectURL(bucket, cdnBaseURL, key string) string {
	base := cdnBaseURL
	if base == "" {
		base = publicHost + "/" + bucket
	}
	base = strings.TrimRight(base, "/")

	return base + "/" + encodeKey(key)
}

func encodeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
