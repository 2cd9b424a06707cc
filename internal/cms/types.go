package cms

import (
	"strings"
	"time"
)

// PingResponse mirrors the payload returned by /api/ping.
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
}

// PingResult is the outcome of one health check.
type PingResult struct {
	StatusCode int
	Message    string
	Timestamp  time.Time
}

// OK reports whether the backend declared itself healthy.
func (r PingResult) OK() bool {
	return r.StatusCode == 200
}

// File describes an uploaded media file from /upload/files.
type File struct {
	ID              int64       `json:"id"`
	DocumentID      string      `json:"documentId"`
	Name            string      `json:"name"`
	AlternativeText *string     `json:"alternativeText"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	Mime            string      `json:"mime"`
	URL             string      `json:"url"`
	Formats         FileFormats `json:"formats"`
}

// FileFormats lists the resized variants generated for an image upload.
// Variants are optional; small uploads never get a large rendition.
type FileFormats struct {
	Thumbnail *ImageFormat `json:"thumbnail"`
	Small     *ImageFormat `json:"small"`
	Medium    *ImageFormat `json:"medium"`
	Large     *ImageFormat `json:"large"`
}

// ImageFormat is one resized rendition of an upload.
type ImageFormat struct {
	Name   string  `json:"name"`
	Ext    string  `json:"ext"`
	Mime   string  `json:"mime"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Size   float64 `json:"size"`
	URL    string  `json:"url"`
}

// LargeURL returns the large rendition URL when the file has one.
func (f File) LargeURL() (string, bool) {
	if f.Formats.Large == nil {
		return "", false
	}
	url := strings.TrimSpace(f.Formats.Large.URL)
	return url, url != ""
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
