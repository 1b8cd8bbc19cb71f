package main

import (
	"log"
	"os"

	"chatmedia/internal/api"
	"chatmedia/internal/config"
	"chatmedia/internal/media"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("CHATMEDIA_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	fileBase := cfg.BasicConfig.UploadBaseDir
	if fileBase == "" {
		fileBase = "./data/uploads"
	}

	service := media.NewService(media.Options{
		BaseDir: fileBase,
		NewSpeechClient: func() (media.SpeechToText, error) {
			return media.NewWhisperClient(cfg.Whisper.BaseURL, cfg.Whisper.Model)
		},
	})
	handlers := api.NewHandler(service, fileBase, cfg.BasicConfig.PublicBaseURL)

	router := gin.Default()
	handlers.RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
