package models

// Attachment describes a stored upload as returned to the caller. It is
// assembled once per successful upload and never persisted server-side;
// the file named by ID is the only durable record.
type Attachment struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	FileName      string `json:"fileName"`
	FileURL       string `json:"fileURL"`
	ThumbnailURL  string `json:"thumbnailURL,omitempty"`
	FileSize      int64  `json:"fileSize"`
	MimeType      string `json:"mimeType"`
	ExtractedText string `json:"extractedText,omitempty"`
}
