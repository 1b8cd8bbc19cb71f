package media

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// ErrAttachmentNotFound reports that no stored artifact matches the
// identifier. A repeated delete lands here; that is an acceptable outcome,
// not a fault.
var ErrAttachmentNotFound = errors.New("file not found")

// Remove deletes the attachment stored under id, probing the known
// extensions since the identifier does not encode its type. The first
// match is the only possible one: identifiers are issued once, for one
// file. The thumbnail, when present, goes with the original.
func (s *Service) Remove(id string) error {
	for _, ext := range UploadExtensions() {
		path := ArtifactPath(s.baseDir, id, ext)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat attachment: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove attachment: %w", err)
		}
		thumbPath := ThumbnailPath(s.baseDir, id, ext)
		if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
			log.Printf("remove thumbnail %s failed: %v", thumbPath, err)
		}
		return nil
	}
	return ErrAttachmentNotFound
}
