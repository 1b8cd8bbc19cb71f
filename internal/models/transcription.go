package models

// Transcription is the result of a speech-to-text call. Duration is in
// seconds and may be zero when the service does not report it.
type Transcription struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Language string  `json:"language"`
}
