package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
)

var (
	errNoMetadata    = errors.New("no EXIF metadata")
	errNoCaptureDate = errors.New("no DateTime tag in EXIF metadata")
)

// readCaptureDate reads the IFD0 DateTime tag from a JPEG's EXIF block and
// returns it normalized to YYYY-MM-DD.
func readCaptureDate(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", errNoMetadata
		}
		if exif.IsCriticalError(err) || x == nil {
			return "", fmt.Errorf("decoding EXIF: %w", err)
		}
		// Sub-IFD failures still leave IFD0 usable.
	}

	tag, err := x.Get(exif.DateTime)
	if err != nil {
		var notPresent exif.TagNotPresentError
		if errors.As(err, &notPresent) {
			return "", errNoCaptureDate
		}
		return "", fmt.Errorf("reading DateTime tag: %w", err)
	}

	raw, err := tag.StringVal()
	if err != nil {
		return "", fmt.Errorf("reading DateTime value: %w", err)
	}

	return normalizeExifDateTime(raw), nil
}

// normalizeExifDateTime turns "2006:01:02 15:04:05" into "2006-01-02".
// The value is not validated; malformed input keeps its shape.
func normalizeExifDateTime(raw string) string {
	date, _, _ := strings.Cut(raw, " ")
	return strings.ReplaceAll(date, ":", "-")
}

// extractCaptureDate never fails: any read problem is logged and reported
// as an absent date.
func extractCaptureDate(path string, logger zerolog.Logger) (string, bool) {
	date, err := readCaptureDate(path)
	if err == nil {
		return date, true
	}

	if errors.Is(err, errNoMetadata) || errors.Is(err, errNoCaptureDate) {
		logger.Debug().Str("file", path).Err(err).Msg("capture date absent")
	} else {
		logger.Warn().Str("file", path).Err(err).Msg("cannot read EXIF metadata")
	}
	return "", false
}
