package models

import (
	"fmt"
	"strings"
	"time"
)

type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

// ParseMediaKind maps a request path segment onto a kind.
func ParseMediaKind(s string) (MediaKind, bool) {
	switch MediaKind(s) {
	case KindVideo:
		return KindVideo, true
	case KindAudio:
		return KindAudio, true
	}
	return "", false
}

type StorageKind string

const (
	StorageByURL    StorageKind = "byUrl"
	StorageEmbedded StorageKind = "embedded"
)

// DefaultAudioMime is used when an embedded upload carries no explicit mime type.
const DefaultAudioMime = "audio/mpeg"

// Location is where a record's payload lives: either an external URL or an
// inline base64 body with its mime type. Exactly one variant is active,
// selected by Storage.
type Location struct {
	Storage  StorageKind
	URL      string // byUrl only
	MimeType string // embedded only
	Payload  string // embedded only, base64 body without the data: prefix
}

func ByURL(url string) Location {
	return Location{Storage: StorageByURL, URL: url}
}

func Embedded(mimeType, payload string) Location {
	return Location{Storage: StorageEmbedded, MimeType: mimeType, Payload: payload}
}

// DataURL reassembles the wire form of an embedded location.
func (l Location) DataURL() string {
	return "data:" + l.MimeType + ";base64," + l.Payload
}

type MediaRecord struct {
	ID              string
	Title           string
	Kind            MediaKind
	Location        Location
	FileSizeBytes   int64 // embedded only, computed from the payload
	DurationSeconds *float64
	UploadedAt      time.Time
}

// EmbeddedSize applies the 3-bytes-per-4-characters rule to a base64 body.
// Padding is stripped first so the result equals the decoded byte length.
func EmbeddedSize(payload string) int64 {
	trimmed := strings.TrimRight(payload, "=")
	return int64(len(trimmed)) * 3 / 4
}

const dataURLPrefix = "data:audio/"

// ParseAudioDataURL splits a data:audio/<subtype>;base64,<payload> string
// into mime type and payload. Anything else is rejected.
func ParseAudioDataURL(s string) (mimeType, payload string, err error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", "", fmt.Errorf("audioData must start with %q", dataURLPrefix)
	}
	rest := s[len("data:"):]

	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", "", fmt.Errorf("audioData is missing the \";base64,\" marker")
	}
	if len(mimeType) == len("audio/") {
		return "", "", fmt.Errorf("audioData has an empty mime subtype")
	}
	if payload == "" {
		return "", "", fmt.Errorf("audioData has an empty payload")
	}
	return mimeType, payload, nil
}
