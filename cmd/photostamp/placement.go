package main

import (
	"image"
	"strings"
)

// Position names where on the image the watermark is anchored.
type Position string

const (
	PositionLeftTop     Position = "left-top"
	PositionCenter      Position = "center"
	PositionRightBottom Position = "right-bottom"
)

// watermarkMargin is the pixel gap kept from the image edge.
const watermarkMargin = 10

// parsePosition normalizes free-text input. Unknown values are kept as-is
// and resolved to left-top when placing.
func parsePosition(s string) Position {
	return Position(strings.ToLower(strings.TrimSpace(s)))
}

// isKnown reports whether p is one of the recognized placement policies.
func (p Position) isKnown() bool {
	switch parsePosition(string(p)) {
	case PositionLeftTop, PositionCenter, PositionRightBottom:
		return true
	}
	return false
}

// placeWatermark returns the text anchor for the given policy. The origin is
// the top-left corner of the image and y is the text baseline. Results are
// not clamped, so text larger than the image yields coordinates outside it.
func placeWatermark(imageWidth, imageHeight, textWidth, textHeight int, pos Position) image.Point {
	switch parsePosition(string(pos)) {
	case PositionCenter:
		return image.Pt((imageWidth-textWidth)/2, (imageHeight-textHeight)/2+textHeight)
	case PositionRightBottom:
		return image.Pt(imageWidth-textWidth-watermarkMargin, imageHeight-watermarkMargin)
	default:
		return image.Pt(watermarkMargin, textHeight)
	}
}
