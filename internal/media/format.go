package media

import (
	"slices"
	"strings"
)

// FileCategory classifies an upload by its filename extension.
type FileCategory string

const (
	CategoryAudio    FileCategory = "audio"
	CategoryImage    FileCategory = "image"
	CategoryDocument FileCategory = "document"
	CategoryUnknown  FileCategory = "unknown"
)

var (
	audioExtensions    = []string{"m4a", "mp3", "wav", "webm", "ogg", "flac"}
	imageExtensions    = []string{"jpg", "jpeg", "png", "gif", "webp", "heic"}
	documentExtensions = []string{"pdf", "txt", "md"}
)

var mimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"heic": "image/heic",
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"md":   "text/markdown",
}

// Ext returns the lowercased extension of filename without the dot, or ""
// when the name carries no extension.
func Ext(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// Categorize maps a filename to its file category. Every extension belongs
// to exactly one category; anything unrecognized is CategoryUnknown.
func Categorize(filename string) FileCategory {
	ext := Ext(filename)
	switch {
	case slices.Contains(audioExtensions, ext):
		return CategoryAudio
	case slices.Contains(imageExtensions, ext):
		return CategoryImage
	case slices.Contains(documentExtensions, ext):
		return CategoryDocument
	}
	return CategoryUnknown
}

// MIMEType resolves an extension to its MIME type, defaulting to a generic
// binary type for anything outside the table.
func MIMEType(ext string) string {
	if m, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return m
	}
	return "application/octet-stream"
}

// AudioExtensions returns the extensions accepted for transcription.
func AudioExtensions() []string {
	return slices.Clone(audioExtensions)
}

// UploadExtensions returns the extensions accepted for attachment upload:
// images first, then documents. The order is the probe order used when
// deleting by identifier.
func UploadExtensions() []string {
	exts := make([]string, 0, len(imageExtensions)+len(documentExtensions))
	exts = append(exts, imageExtensions...)
	exts = append(exts, documentExtensions...)
	return exts
}
