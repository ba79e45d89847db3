package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/types"
)

// FileInfo holds what the extractors report about a file on disk
type FileInfo struct {
	Path string
	Name string
	Size int64
}

// GetFileInfo returns the base name and on-disk size of a file
func GetFileInfo(filePath string) (*FileInfo, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Path: filePath,
		Name: filepath.Base(filePath),
		Size: stat.Size(),
	}, nil
}

// Extension returns the lower-cased extension of path including the dot
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// DetectFileKind maps a file extension to the extractor family that handles it
func DetectFileKind(path string) types.FileKind {
	ext := Extension(path)
	switch {
	case constants.ImageExtensions[ext]:
		return types.FileKindImage
	case constants.PDFExtensions[ext]:
		return types.FileKindPDF
	case constants.CSVExtensions[ext]:
		return types.FileKindCSV
	default:
		return types.FileKindUnknown
	}
}

// OutputPathFor derives {outputDir}/{basename_without_ext}_processed.json
func OutputPathFor(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+constants.OutputSuffix)
}

// SupportedExtensions lists every routed extension in a stable order
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp", ".pdf", ".csv"}
}
