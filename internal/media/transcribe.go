package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"chatmedia/internal/models"
)

// DefaultLanguage is the transcription language hint used when the caller
// does not supply one.
const DefaultLanguage = "fr"

const openAIKeyEnv = "OPENAI_API_KEY"

// ErrMissingAPIKey is a configuration fault: the transcription credential
// is absent from the environment. No client retry can fix it.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not configured")

// SpeechToText converts a staged audio file into text with a language hint.
type SpeechToText interface {
	Transcribe(ctx context.Context, path, language string) (*models.Transcription, error)
}

type whisperClient struct {
	client *openai.Client
	model  string
}

// NewWhisperClient builds the OpenAI-backed SpeechToText from the
// environment. Returns ErrMissingAPIKey when the credential is unset.
func NewWhisperClient(baseURL, model string) (SpeechToText, error) {
	apiKey := os.Getenv(openAIKeyEnv)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &whisperClient{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (w *whisperClient) Transcribe(ctx context.Context, path, language string) (*models.Transcription, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: path,
		Language: language,
		// Verbose format carries the audio duration alongside the text.
		Format: openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}
	return &models.Transcription{Text: resp.Text, Duration: resp.Duration, Language: language}, nil
}

// Transcribe validates an audio upload, stages it to a temporary file,
// submits it to the speech service, and removes the staged file on every
// exit path.
func (s *Service) Transcribe(ctx context.Context, up Upload) (*models.Transcription, error) {
	size, err := PayloadSize(up.Reader)
	if err != nil {
		return nil, err
	}
	if err := CheckUpload(up.Filename, size, audioExtensions, MaxAudioBytes); err != nil {
		return nil, err
	}

	language := up.Language
	if language == "" {
		language = DefaultLanguage
	}

	// Cleanup is registered before staging so a write that fails mid-copy
	// still leaves nothing behind.
	tempPath := filepath.Join(os.TempDir(), TempAudioName(Ext(up.Filename)))
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			log.Printf("remove staged audio %s failed: %v", tempPath, err)
		}
	}()
	if err := writeStream(tempPath, up.Reader); err != nil {
		return nil, fmt.Errorf("stage audio: %w", err)
	}

	client, err := s.speechClient()
	if err != nil {
		return nil, err
	}
	return client.Transcribe(ctx, tempPath, language)
}

func writeStream(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
