package main

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const defaultJPEGQuality = 90

// decodeImage loads the stored pixels as-is. EXIF orientation is not applied
// so the output keeps the source's width and height.
func decodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encoding JPEG: %w", err)
	}
	return nil
}
