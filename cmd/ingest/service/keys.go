package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Object key formats are a contract with the external processor, which
// parses the processing ID back out of the audio key. Do not change them
// without coordinating a worker release.
//
//	audio: {processingID}-{slug(title)}.{ext}
//	cover: {unix-ms}-{original filename}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// slugifyTitle lowercases the title, collapses every run of
// non-alphanumeric characters into a single hyphen and strips hyphens
// from both ends.
func slugifyTitle(title string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// songObjectKey derives the audio object key from the submission
func songObjectKey(processingID, title, filename string) string {
	return fmt.Sprintf("%s-%s.%s", processingID, slugifyTitle(title), fileExt(filename))
}

// coverObjectKey derives the cover image key. The timestamp is the only
// disambiguator here: two submissions of the same filename within one
// millisecond would collide and overwrite each other's cover.
// TODO: prefix the processing ID once the dashboard stops assuming
// timestamp-first cover keys.
func coverObjectKey(now time.Time, filename string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), filename)
}

// imageObjectKey derives keys for profile and playlist cover uploads
func imageObjectKey(prefix, userID string, now time.Time, filename string) string {
	return fmt.Sprintf("%s-%s-%d-%s", prefix, userID, now.UnixMilli(), filename)
}

func fileExt(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		return filename[idx+1:]
	}
	return "bin"
}
