package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Thumbnail scales an image to width keeping the aspect ratio, never upscaling.
func Thumbnail(src io.Reader, filename string, width int) ([]byte, string, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		format = imaging.JPEG
	}
	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), "image/" + strings.ToLower(format.String()), nil
}
