package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig   `json:"basic_config"`
	Whisper     WhisperConfig `json:"whisper"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address"`
	UploadBaseDir string `json:"upload_base_dir"`
	PublicBaseURL string `json:"public_base_url"`
}

// WhisperConfig overrides the transcription endpoint and model. The API
// credential is read from the environment, not from this file.
type WhisperConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// Load reads configuration from the provided path (defaults to
// config.json). A missing file yields the zero config; every setting has a
// serviceable default and the transcription credential is checked lazily,
// on first use.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.BasicConfig.UploadBaseDir != "" && !filepath.IsAbs(cfg.BasicConfig.UploadBaseDir) {
		cfg.BasicConfig.UploadBaseDir = filepath.Join(filepath.Dir(absPath), cfg.BasicConfig.UploadBaseDir)
	}

	return &cfg, nil
}
