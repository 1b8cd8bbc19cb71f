package media

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Size ceilings for inbound payloads. The audio ceiling matches the
// transcription service's own input limit.
const (
	MaxAudioBytes = 25 << 20
	MaxFileBytes  = 20 << 20
)

// Admission errors. All are user-correctable and map to client errors at
// the boundary.
var (
	ErrEmptyFilename     = errors.New("empty file name")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file too large")
)

// CheckUpload admits or rejects an upload from its metadata alone. It has
// no side effects; callers run it before touching storage.
func CheckUpload(filename string, size int64, allowed []string, maxBytes int64) error {
	if filename == "" {
		return ErrEmptyFilename
	}
	ext := Ext(filename)
	if ext == "" || !slices.Contains(allowed, ext) {
		return fmt.Errorf("%w: accepted formats: %s", ErrUnsupportedFormat, strings.Join(allowed, ", "))
	}
	if size > maxBytes {
		return fmt.Errorf("%w: maximum %d MB", ErrFileTooLarge, maxBytes>>20)
	}
	return nil
}

// IsAdmissionError reports whether err is one of the admission rejections.
func IsAdmissionError(err error) bool {
	return errors.Is(err, ErrEmptyFilename) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileTooLarge)
}

// PayloadSize measures the length of the transferred payload by seeking to
// the end and rewinds to the start. The declared multipart size is never
// trusted.
func PayloadSize(rs io.ReadSeeker) (int64, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("measure payload: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind payload: %w", err)
	}
	return size, nil
}
