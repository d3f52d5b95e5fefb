package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
)

var (
	errInvalidPath = errors.New("input path does not exist or is not a directory")
	errNoImages    = errors.New("no JPEG images found in input directory")
)

const outputDirSuffix = "_watermark"

// checkInputDir verifies that inputDir exists and is a directory.
func checkInputDir(inputDir string) error {
	if inputDir == "" {
		return errInvalidPath
	}
	info, err := os.Stat(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", errInvalidPath, inputDir)
		}
		return fmt.Errorf("error accessing input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", errInvalidPath, inputDir)
	}
	return nil
}

// enumerateImages lists the JPEG files directly inside inputDir, sorted by
// name. Sub-directories are not descended into.
func enumerateImages(inputDir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", inputDir, err)
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		if !entry.Type().IsRegular() {
			// Follow symlinks; skip devices, sockets and links to directories.
			info, err := os.Stat(filepath.Join(inputDir, entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, ImageFile{
			SourceName: entry.Name(),
			SourceDir:  inputDir,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].SourceName < files[j].SourceName
	})

	return files, nil
}

// outputDirFor returns the "<name>_watermark" sibling of inputDir.
func outputDirFor(inputDir string) (string, error) {
	abs, err := filepath.Abs(inputDir)
	if err != nil {
		return "", fmt.Errorf("resolving input directory: %w", err)
	}
	return filepath.Join(filepath.Dir(abs), filepath.Base(abs)+outputDirSuffix), nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// writeOutput replaces dest with data. A destination left incomplete by a
// failed write is removed.
func writeOutput(dest string, data []byte) error {
	if err := os.WriteFile(dest, data, 0644); err != nil {
		os.Remove(dest)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

func calculateXXHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

func checksumBytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
