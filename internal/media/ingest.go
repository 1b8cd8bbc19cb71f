package media

import (
	"fmt"
	"log"
	"os"

	"chatmedia/internal/models"
)

const (
	maxExtractPages   = 10
	maxExtractedChars = 5000
)

// Ingest validates an upload, persists the original, derives a thumbnail
// for images and extracted text for PDFs, and assembles the attachment
// descriptor. Derivations are enrichments: their failure never fails the
// upload. URLs in the result are rooted at baseURL.
func (s *Service) Ingest(up Upload, baseURL string) (*models.Attachment, error) {
	size, err := PayloadSize(up.Reader)
	if err != nil {
		return nil, err
	}
	if err := CheckUpload(up.Filename, size, UploadExtensions(), MaxFileBytes); err != nil {
		return nil, err
	}

	ext := Ext(up.Filename)
	id := NewAttachmentID()
	category := Categorize(up.Filename)

	if err := os.MkdirAll(ArtifactDir(s.baseDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	destPath := ArtifactPath(s.baseDir, id, ext)
	if err := writeStream(destPath, up.Reader); err != nil {
		// No identifier is returned for a failed save; a partial file
		// would be unreachable, so remove it.
		if rmErr := os.Remove(destPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("remove partial artifact %s failed: %v", destPath, rmErr)
		}
		return nil, fmt.Errorf("save upload: %w", err)
	}

	attachment := &models.Attachment{
		ID:       id,
		Type:     string(category),
		FileName: SanitizeFilename(up.Filename),
		FileURL:  ArtifactURL(baseURL, id, ext),
		FileSize: size,
		MimeType: MIMEType(ext),
	}

	if category == CategoryImage {
		if url := s.deriveThumbnail(id, ext, destPath, baseURL); url != "" {
			attachment.ThumbnailURL = url
		}
	}
	if ext == "pdf" {
		attachment.ExtractedText = s.deriveText(id, destPath)
	}
	return attachment, nil
}

func (s *Service) deriveThumbnail(id, ext, srcPath, baseURL string) string {
	if err := os.MkdirAll(ThumbnailDir(s.baseDir), 0o755); err != nil {
		log.Printf("create thumbnail directory failed: %v", err)
		return ""
	}
	thumbPath := ThumbnailPath(s.baseDir, id, ext)
	if err := s.thumbs.CreateThumbnail(srcPath, thumbPath); err != nil {
		log.Printf("create thumbnail for %s failed: %v", id, err)
		return ""
	}
	return ThumbnailURL(baseURL, id, ext)
}

func (s *Service) deriveText(id, path string) string {
	text, err := s.extractor.ExtractText(path, maxExtractPages)
	if err != nil {
		log.Printf("extract text for %s failed: %v", id, err)
		return ""
	}
	return truncateRunes(text, maxExtractedChars)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
