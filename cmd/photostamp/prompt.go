package main

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

var (
	errInvalidFontSize = errors.New("font size must be a positive integer")
	errInvalidColor    = errors.New("font color must look like #RRGGBB")
	errInputClosed     = errors.New("input ended before all answers were given")
)

// WatermarkConfig is the user's watermark style, fixed for the whole run.
type WatermarkConfig struct {
	FontSize  int
	FontColor color.RGBA
	Position  Position
}

// answers holds everything collected at startup.
type answers struct {
	InputDir  string
	Watermark WatermarkConfig
}

// promptAnswers asks the startup questions on w and reads one line per
// answer from r. A bad font size or color is fatal; the placement policy is
// accepted as typed.
func promptAnswers(r io.Reader, w io.Writer) (answers, error) {
	scanner := bufio.NewScanner(r)
	ask := func(question string) (string, error) {
		fmt.Fprintln(w, question)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading input: %w", err)
			}
			return "", errInputClosed
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	var a answers

	dir, err := ask("Input directory:")
	if err != nil {
		return answers{}, err
	}
	a.InputDir = dir

	sizeText, err := ask("Font size (e.g. 20):")
	if err != nil {
		return answers{}, err
	}
	size, err := parseFontSize(sizeText)
	if err != nil {
		return answers{}, err
	}

	colorText, err := ask("Font color (e.g. #FF0000):")
	if err != nil {
		return answers{}, err
	}
	fontColor, err := parseHexColor(colorText)
	if err != nil {
		return answers{}, err
	}

	posText, err := ask("Watermark position (left-top, center, right-bottom):")
	if err != nil {
		return answers{}, err
	}

	a.Watermark = WatermarkConfig{
		FontSize:  size,
		FontColor: fontColor,
		Position:  parsePosition(posText),
	}
	return a, nil
}

func parseFontSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidFontSize, s)
	}
	return n, nil
}

// parseHexColor accepts exactly "#RRGGBB" with hex digits in either case.
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
