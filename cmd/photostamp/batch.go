package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Outcome is the terminal state of one image.
type Outcome string

const (
	OutcomeWritten       Outcome = "written"
	OutcomeSkippedNoDate Outcome = "skipped-no-date"
	OutcomeFailed        Outcome = "failed"
)

// ImageFile represents one candidate photo and what happened to it
type ImageFile struct {
	SourceName  string
	SourceDir   string
	DestDir     string
	CaptureDate string
	Status      Outcome
	Reason      string
	Checksum    string
}

// Summary tallies the outcomes of a batch.
type Summary struct {
	Total   int
	Written int
	Skipped int
	Failed  int
	Files   []ImageFile
}

// processor stamps images one at a time. Nothing in it changes between
// files.
type processor struct {
	renderer *Renderer
	printer  *Printer
	logger   zerolog.Logger
	quality  int

	decode func(path string) (image.Image, error)
	write  func(path string, data []byte) error
}

func newProcessor(renderer *Renderer, printer *Printer, logger zerolog.Logger, quality int) *processor {
	return &processor{
		renderer: renderer,
		printer:  printer,
		logger:   logger,
		quality:  quality,
		decode:   decodeImage,
		write:    writeOutput,
	}
}

// processBatch handles the main functionality of the program
func (p *processor) processBatch(inputDir string, wm WatermarkConfig) (Summary, error) {
	if err := checkInputDir(inputDir); err != nil {
		return Summary{}, err
	}

	files, err := enumerateImages(inputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to enumerate files: %w", err)
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("%w: %s", errNoImages, inputDir)
	}

	outputDir, err := outputDirFor(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := ensureDir(outputDir); err != nil {
		return Summary{}, err
	}

	p.logger.Debug().
		Str("input", inputDir).
		Str("output", outputDir).
		Int("files", len(files)).
		Msg("starting batch")

	if !wm.Position.isKnown() {
		p.logger.Warn().
			Str("position", string(wm.Position)).
			Msg("unknown watermark position, using left-top")
	}

	summary := Summary{Total: len(files)}
	for i := range files {
		files[i].DestDir = outputDir
		p.processImage(&files[i], wm)

		switch files[i].Status {
		case OutcomeWritten:
			summary.Written++
			p.printer.Written(files[i].SourceName)
		case OutcomeSkippedNoDate:
			summary.Skipped++
			p.printer.SkippedNoDate(files[i].SourceName)
		case OutcomeFailed:
			summary.Failed++
			p.printer.Failed(files[i].SourceName, files[i].Reason)
		}
	}
	summary.Files = files

	return summary, nil
}

// processImage drives one file to a terminal Status. A panic while decoding
// or drawing is recorded as a failure of that file only.
func (p *processor) processImage(file *ImageFile, wm WatermarkConfig) {
	start := time.Now()
	sourcePath := filepath.Join(file.SourceDir, file.SourceName)

	defer func() {
		if r := recover(); r != nil {
			file.Status = OutcomeFailed
			file.Reason = fmt.Sprintf("unexpected error: %v", r)
		}
		p.logger.Debug().
			Str("file", file.SourceName).
			Str("status", string(file.Status)).
			Dur("elapsed", time.Since(start)).
			Msg("processed")
	}()

	date, ok := extractCaptureDate(sourcePath, p.logger)
	if !ok {
		file.Status = OutcomeSkippedNoDate
		return
	}
	file.CaptureDate = date

	if err := p.stampImage(file, sourcePath, wm); err != nil {
		file.Status = OutcomeFailed
		file.Reason = err.Error()
		return
	}
	file.Status = OutcomeWritten
}

// stampImage decodes, renders, encodes and writes one image. Bytes reach the
// output directory only after encoding has fully succeeded.
func (p *processor) stampImage(file *ImageFile, sourcePath string, wm WatermarkConfig) error {
	img, err := p.decode(sourcePath)
	if err != nil {
		return err
	}

	stamped, err := p.renderer.Render(img, file.CaptureDate, wm)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encodeJPEG(&buf, stamped, p.quality); err != nil {
		return err
	}

	destPath := filepath.Join(file.DestDir, file.SourceName)
	if err := p.write(destPath, buf.Bytes()); err != nil {
		return err
	}

	// Read back to catch short writes on network or removable filesystems.
	want := checksumBytes(buf.Bytes())
	got, err := calculateXXHash(destPath)
	if err != nil {
		os.Remove(destPath)
		return fmt.Errorf("verifying %s: %w", destPath, err)
	}
	if got != want {
		os.Remove(destPath)
		return fmt.Errorf("verifying %s: checksum mismatch", destPath)
	}
	file.Checksum = got

	return nil
}
