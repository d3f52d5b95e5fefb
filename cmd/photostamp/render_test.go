package main

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(rect image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(rect)
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// changedBounds returns the smallest rectangle holding every pixel of got
// that differs from bg.
func changedBounds(got *image.RGBA, bg color.RGBA) image.Rectangle {
	var r image.Rectangle
	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got.RGBAAt(x, y) != bg {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestRender_KeepsDimensionsAndOpacity(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	src := solidImage(image.Rect(0, 0, 200, 100), color.White)
	wm := WatermarkConfig{FontSize: 20, FontColor: color.RGBA{A: 0xff}, Position: PositionCenter}

	got, err := r.Render(src, "2022-01-01", wm)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 200, 100), got.Bounds())
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if got.RGBAAt(x, y).A != 0xff {
				t.Fatalf("pixel (%d,%d) is not opaque: %v", x, y, got.RGBAAt(x, y))
			}
		}
	}

	// The source is left as it was.
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, src.RGBAAt(100, 50))
}

func TestRender_DrawsTextAtAnchor(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	const text = "2022-01-01"
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}

	for _, pos := range []Position{PositionLeftTop, PositionCenter, PositionRightBottom} {
		t.Run(string(pos), func(t *testing.T) {
			src := solidImage(image.Rect(0, 0, 320, 200), white)
			wm := WatermarkConfig{FontSize: 24, FontColor: color.RGBA{R: 0xff, A: 0xff}, Position: pos}

			got, err := r.Render(src, text, wm)
			require.NoError(t, err)

			face := r.newFace(wm.FontSize)
			defer face.Close()
			textW, textH := measureText(face, text)
			anchor := placeWatermark(320, 200, textW, textH, pos)

			changed := changedBounds(got, white)
			require.False(t, changed.Empty(), "no watermark pixels drawn")

			const slack = 2
			expected := image.Rect(anchor.X-slack, anchor.Y-textH-slack, anchor.X+textW+slack, anchor.Y+slack)
			assert.True(t, changed.In(expected), "text drawn at %v, expected within %v", changed, expected)
		})
	}
}

func TestRender_UsesFontColor(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	src := solidImage(image.Rect(0, 0, 200, 100), color.White)
	blue := color.RGBA{B: 0xff, A: 0xff}

	got, err := r.Render(src, "2022-01-01", WatermarkConfig{FontSize: 30, FontColor: blue, Position: PositionCenter})
	require.NoError(t, err)

	found := false
	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got.RGBAAt(x, y) == blue {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected fully covered pixels in the font color")
}

func TestRender_NonZeroOriginAndTransparentSource(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	src := image.NewNRGBA(image.Rect(5, 5, 105, 55)) // fully transparent

	got, err := r.Render(src, "x", WatermarkConfig{FontSize: 10, FontColor: color.RGBA{G: 0xff, A: 0xff}, Position: PositionLeftTop})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 100, 50), got.Bounds())
	assert.Equal(t, color.RGBA{A: 0xff}, got.RGBAAt(99, 49), "transparent pixels flatten to opaque black")
}

func TestRender_TextLargerThanImage(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	src := solidImage(image.Rect(0, 0, 40, 30), color.White)
	for _, pos := range []Position{PositionLeftTop, PositionCenter, PositionRightBottom} {
		got, err := r.Render(src, "2022-01-01", WatermarkConfig{FontSize: 120, FontColor: color.RGBA{A: 0xff}, Position: pos})
		require.NoError(t, err, pos)
		assert.Equal(t, src.Bounds(), got.Bounds(), pos)
	}
}

func TestNewRenderer_FontFile(t *testing.T) {
	dir := t.TempDir()

	_, err := NewRenderer(filepath.Join(dir, "missing.ttf"))
	assert.Error(t, err)

	bogus := filepath.Join(dir, "bogus.ttf")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not a font"), 0644))
	_, err = NewRenderer(bogus)
	assert.Error(t, err)
}

func TestMeasureText(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	small := r.newFace(12)
	defer small.Close()
	large := r.newFace(48)
	defer large.Close()

	sw, sh := measureText(small, "2022-01-01")
	lw, lh := measureText(large, "2022-01-01")

	assert.Positive(t, sw)
	assert.Positive(t, sh)
	assert.Greater(t, lw, sw)
	assert.Greater(t, lh, sh)

	ew, _ := measureText(small, "")
	assert.Zero(t, ew)
}

func TestRender_LargeFontSizeAllocation(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)
	src := solidImage(image.Rect(0, 0, 400, 300), color.White)
	wm := WatermarkConfig{FontSize: 400, FontColor: color.RGBA{A: 0xff}, Position: PositionLeftTop}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = r.Render(src, "2023-07-15", wm)
	require.NoError(t, err)
	runtime.ReadMemStats(&after)

	allocated := after.TotalAlloc - before.TotalAlloc
	assert.Less(t, allocated, uint64(32<<20), "Render at size 400 allocated %d bytes", allocated)

	face := r.newFace(400)
	defer face.Close()
	w, h := measureText(face, "2023-07-15")
	assert.Greater(t, w, 400)
	assert.Equal(t, 400, h)
}
