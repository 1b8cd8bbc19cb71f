package media

import (
	"io"
	"sync"
)

// Upload is a single inbound file, scoped to the request that carried it.
// Size is derived from the stream, never from Upload metadata.
type Upload struct {
	Reader   io.ReadSeeker
	Filename string
	Language string // transcription hint, audio only
	UserID   string // display metadata, upload only
}

// Service implements the media ingestion pipeline: admission checks,
// content-addressed storage placement, best-effort derivation, and
// delegation to the speech service.
type Service struct {
	baseDir   string
	thumbs    Thumbnailer
	extractor TextExtractor

	speechMu  sync.Mutex
	speech    SpeechToText
	newSpeech func() (SpeechToText, error)
}

// Options configures a Service. Zero-value capabilities fall back to the
// production implementations; NewSpeechClient defaults to the
// environment-keyed Whisper client.
type Options struct {
	BaseDir         string
	Thumbnailer     Thumbnailer
	TextExtractor   TextExtractor
	NewSpeechClient func() (SpeechToText, error)
}

// NewService constructs the media service.
func NewService(opts Options) *Service {
	s := &Service{
		baseDir:   opts.BaseDir,
		thumbs:    opts.Thumbnailer,
		extractor: opts.TextExtractor,
		newSpeech: opts.NewSpeechClient,
	}
	if s.thumbs == nil {
		s.thumbs = NewThumbnailer()
	}
	if s.extractor == nil {
		s.extractor = NewPDFExtractor()
	}
	if s.newSpeech == nil {
		s.newSpeech = func() (SpeechToText, error) { return NewWhisperClient("", "") }
	}
	return s
}

// speechClient returns the shared speech client, constructing it on first
// use. Misconfiguration surfaces here, not at startup.
func (s *Service) speechClient() (SpeechToText, error) {
	s.speechMu.Lock()
	defer s.speechMu.Unlock()
	if s.speech != nil {
		return s.speech, nil
	}
	client, err := s.newSpeech()
	if err != nil {
		return nil, err
	}
	s.speech = client
	return client, nil
}
