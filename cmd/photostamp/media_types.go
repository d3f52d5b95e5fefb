package main

import (
	"path/filepath"
	"strings"
)

type FileType string

const (
	JPEG FileType = "jpeg"
)

var fileExtensionToFileType = map[string]FileType{
	"jpg": JPEG, "jpeg": JPEG,
}

// getFileType classifies a file by extension, case-insensitively.
// It returns "" for anything that is not a supported image.
func getFileType(name string) FileType {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}

	fileType, ok := fileExtensionToFileType[ext[1:]] // Remove the leading dot
	if !ok {
		return ""
	}

	return fileType
}

func isImageFile(name string) bool {
	return getFileType(name) != ""
}
