package interfaces

import (
	"context"
)

// OCREngine defines the interface for OCR implementations
type OCREngine interface {
	// Name returns the name of the OCR tool
	Name() string

	// ExtractText returns the plain text recognized in an image file
	ExtractText(ctx context.Context, imagePath string) (string, error)

	// TokenConfidences returns one confidence per recognized token, using
	// -1 for regions the engine reports no confidence for
	TokenConfidences(ctx context.Context, imagePath string) ([]float64, error)
}
