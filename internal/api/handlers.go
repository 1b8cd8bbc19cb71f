package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chatmedia/internal/media"
	"chatmedia/internal/models"
)

const (
	// In-memory threshold for multipart parsing; maxRequestBytes is what
	// actually bounds a request.
	maxMultipartMemory = 25 << 20
	// Whole-body ceiling: the 25 MiB audio limit plus form overhead.
	// Larger bodies fail during parsing, before any spooling completes.
	maxRequestBytes = 26 << 20
)

// MediaService is the ingestion pipeline consumed by the HTTP layer.
type MediaService interface {
	Transcribe(ctx context.Context, up media.Upload) (*models.Transcription, error)
	Ingest(up media.Upload, baseURL string) (*models.Attachment, error)
	Remove(id string) error
}

// Handler wires HTTP routes to the media ingestion service.
type Handler struct {
	media      MediaService
	baseDir    string
	publicBase string
}

// NewHandler constructs a Handler instance. publicBaseURL overrides the
// request host when building file URLs; leave it empty to derive URLs from
// each request.
func NewHandler(service MediaService, baseDir, publicBaseURL string) *Handler {
	return &Handler{
		media:      service,
		baseDir:    baseDir,
		publicBase: strings.TrimRight(publicBaseURL, "/"),
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.MaxMultipartMemory = maxMultipartMemory
	chat := router.Group("/api/chat")
	chat.Use(limitRequestBody)
	chat.POST("/transcribe", h.transcribeAudio)
	chat.POST("/upload", h.uploadFile)
	chat.DELETE("/files/:file_id", h.deleteFile)
	router.Static("/uploads", h.baseDir)
}

func limitRequestBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	c.Next()
}

func (h *Handler) transcribeAudio(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "audio file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "open audio failed"})
		return
	}
	defer f.Close()

	result, err := h.media.Transcribe(c.Request.Context(), media.Upload{
		Reader:   f,
		Filename: fileHeader.Filename,
		Language: c.PostForm("language"),
	})
	if err != nil {
		h.respondError(c, err, "transcription")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"text":     result.Text,
		"duration": result.Duration,
		"language": result.Language,
	})
}

func (h *Handler) uploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "open file failed"})
		return
	}
	defer f.Close()

	attachment, err := h.media.Ingest(media.Upload{
		Reader:   f,
		Filename: fileHeader.Filename,
		UserID:   c.PostForm("user_id"),
	}, h.requestBaseURL(c))
	if err != nil {
		h.respondError(c, err, "upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "file": attachment})
}

func (h *Handler) deleteFile(c *gin.Context) {
	if err := h.media.Remove(c.Param("file_id")); err != nil {
		if errors.Is(err, media.ErrAttachmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "file not found"})
			return
		}
		h.respondError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondError maps pipeline errors to HTTP statuses: admission failures
// are the caller's to fix, everything else is a server fault.
func (h *Handler) respondError(c *gin.Context, err error, op string) {
	if media.IsAdmissionError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	log.Printf("%s error: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}

func (h *Handler) requestBaseURL(c *gin.Context) string {
	if h.publicBase != "" {
		return h.publicBase
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
