package main

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

const renderDPI = 72

// Renderer draws date watermarks. The parsed font is shared across images
// and never modified; faces are created per image.
type Renderer struct {
	font *truetype.Font
}

// NewRenderer parses fontFile, or the built-in Go Bold face when fontFile
// is empty.
func NewRenderer(fontFile string) (*Renderer, error) {
	data := gobold.TTF
	if fontFile != "" {
		b, err := os.ReadFile(fontFile)
		if err != nil {
			return nil, fmt.Errorf("reading font file: %w", err)
		}
		data = b
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Renderer{font: f}, nil
}

// newFace returns a face used only for measuring. Its glyph cache holds a
// single mask because the cache buffer grows with the square of size.
func (r *Renderer) newFace(size int) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{
		Size:              float64(size),
		DPI:               renderDPI,
		Hinting:           font.HintingFull,
		GlyphCacheEntries: 1,
	})
}

// measureText returns the advance width of text and the face's line height,
// both rounded up to whole pixels.
func measureText(face font.Face, text string) (width, height int) {
	return font.MeasureString(face, text).Ceil(), face.Metrics().Height.Ceil()
}

// Render returns a new opaque copy of src with text drawn on it. src is not
// modified.
func (r *Renderer) Render(src image.Image, text string, wm WatermarkConfig) (*image.RGBA, error) {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)

	face := r.newFace(wm.FontSize)
	defer face.Close()

	textWidth, textHeight := measureText(face, text)
	pt := placeWatermark(bounds.Dx(), bounds.Dy(), textWidth, textHeight, wm.Position)

	c := freetype.NewContext()
	c.SetDPI(renderDPI)
	c.SetFont(r.font)
	c.SetFontSize(float64(wm.FontSize))
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(wm.FontColor))
	c.SetHinting(font.HintingFull)

	if _, err := c.DrawString(text, freetype.Pt(pt.X, pt.Y)); err != nil {
		return nil, fmt.Errorf("drawing watermark text: %w", err)
	}

	return dst, nil
}
