package media

import (
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	thumbnailBox     = 200
	thumbnailQuality = 85
)

// Thumbnailer derives a reduced preview from a stored image. A failure is
// never fatal to the upload that requested it.
type Thumbnailer interface {
	CreateThumbnail(srcPath, dstPath string) error
}

type imagingThumbnailer struct{}

// NewThumbnailer returns the imaging-backed Thumbnailer: 200x200 bounding
// box, aspect preserved, Lanczos resampling, JPEG quality 85.
func NewThumbnailer() Thumbnailer {
	return imagingThumbnailer{}
}

func (imagingThumbnailer) CreateThumbnail(srcPath, dstPath string) error {
	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	thumb := imaging.Fit(src, thumbnailBox, thumbnailBox, imaging.Lanczos)
	if err := imaging.Save(thumb, dstPath, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}
