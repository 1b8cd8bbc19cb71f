package media

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	chatDir   = "chat"
	thumbsDir = "thumbs"

	attachmentIDPrefix = "file_"
	attachmentIDHexLen = 12
)

// NewAttachmentID returns a fresh identifier of the form file_<12 hex>.
// Identifiers are random, never derived from the uploaded filename.
func NewAttachmentID() string {
	return attachmentIDPrefix + uuidHex()[:attachmentIDHexLen]
}

// TempAudioName returns a unique staging name for a transcription payload.
func TempAudioName(ext string) string {
	return fmt.Sprintf("audio_%s.%s", uuidHex(), ext)
}

func uuidHex() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// ArtifactDir is the directory holding stored originals.
func ArtifactDir(base string) string {
	return filepath.Join(base, chatDir)
}

// ArtifactPath is the storage path of an original, keyed by id and extension.
func ArtifactPath(base, id, ext string) string {
	return filepath.Join(base, chatDir, id+"."+ext)
}

// ThumbnailDir is the directory holding derived thumbnails.
func ThumbnailDir(base string) string {
	return filepath.Join(base, chatDir, thumbsDir)
}

// ThumbnailPath is the storage path of the thumbnail belonging to id/ext.
func ThumbnailPath(base, id, ext string) string {
	return filepath.Join(base, chatDir, thumbsDir, fmt.Sprintf("%s_thumb.%s", id, ext))
}

// ArtifactURL is the public URL of a stored original under baseURL.
func ArtifactURL(baseURL, id, ext string) string {
	return fmt.Sprintf("%s/uploads/%s/%s.%s", baseURL, chatDir, id, ext)
}

// ThumbnailURL is the public URL of a stored thumbnail under baseURL.
func ThumbnailURL(baseURL, id, ext string) string {
	return fmt.Sprintf("%s/uploads/%s/%s/%s_thumb.%s", baseURL, chatDir, thumbsDir, id, ext)
}

// SanitizeFilename reduces a client-supplied name to a safe display form.
// The result is metadata only; storage paths are built from generated
// identifiers, never from this name.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "file"
	}
	return out
}
