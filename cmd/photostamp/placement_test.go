package main

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceWatermark(t *testing.T) {
	testCases := []struct {
		name         string
		imgW, imgH   int
		textW, textH int
		pos          Position
		expected     image.Point
	}{
		{"left-top", 800, 600, 120, 24, PositionLeftTop, image.Pt(10, 24)},
		{"center", 800, 600, 120, 24, PositionCenter, image.Pt(340, 312)},
		{"right-bottom", 800, 600, 120, 24, PositionRightBottom, image.Pt(670, 590)},

		// Odd differences truncate
		{"center odd sizes", 801, 601, 120, 25, PositionCenter, image.Pt(340, 313)},

		// No clamping when text is larger than the image
		{"center oversized text", 100, 50, 151, 81, PositionCenter, image.Pt(-25, 66)},
		{"right-bottom oversized text", 100, 50, 151, 81, PositionRightBottom, image.Pt(-61, 40)},
		{"left-top taller than image", 100, 50, 20, 80, PositionLeftTop, image.Pt(10, 80)},

		// Policy matching ignores case and surrounding whitespace
		{"uppercase center", 800, 600, 120, 24, Position("CENTER"), image.Pt(340, 312)},
		{"padded right-bottom", 800, 600, 120, 24, Position("  Right-Bottom "), image.Pt(670, 590)},

		// Unknown policies fall back to left-top
		{"unknown", 800, 600, 120, 24, Position("top-right"), image.Pt(10, 24)},
		{"empty", 800, 600, 120, 24, Position(""), image.Pt(10, 24)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := placeWatermark(tc.imgW, tc.imgH, tc.textW, tc.textH, tc.pos)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestPlaceWatermark_UnknownMatchesLeftTop(t *testing.T) {
	sizes := [][4]int{
		{1, 1, 0, 0},
		{640, 480, 200, 30},
		{10, 10, 300, 300},
		{4000, 3000, 57, 13},
	}
	for _, s := range sizes {
		want := placeWatermark(s[0], s[1], s[2], s[3], PositionLeftTop)
		got := placeWatermark(s[0], s[1], s[2], s[3], Position("bottom-middle"))
		assert.Equal(t, want, got, "sizes %v", s)
	}
}

func TestParsePosition(t *testing.T) {
	testCases := []struct {
		input    string
		expected Position
		known    bool
	}{
		{"left-top", PositionLeftTop, true},
		{"center", PositionCenter, true},
		{"right-bottom", PositionRightBottom, true},
		{" Center\t", PositionCenter, true},
		{"LEFT-TOP", PositionLeftTop, true},
		{"middle", Position("middle"), false},
		{"", Position(""), false},
	}

	for _, tc := range testCases {
		got := parsePosition(tc.input)
		assert.Equal(t, tc.expected, got, "parsePosition(%q)", tc.input)
		assert.Equal(t, tc.known, got.isKnown(), "parsePosition(%q).isKnown()", tc.input)
	}
}
