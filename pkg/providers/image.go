package providers

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/nodewee/doc-to-json/pkg/interfaces"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/ocr"
	"github.com/nodewee/doc-to-json/pkg/types"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

// ImageExtractor decodes raster images and runs OCR over them
type ImageExtractor struct {
	engine interfaces.OCREngine
	logger logger.Logger
}

// NewImageExtractor creates an image extractor backed by engine
func NewImageExtractor(engine interfaces.OCREngine, log logger.Logger) interfaces.Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &ImageExtractor{
		engine: engine,
		logger: log.Named("image_processor"),
	}
}

// Name returns the name of the extractor
func (e *ImageExtractor) Name() string {
	return "image"
}

// Kind returns the file family handled by this extractor
func (e *ImageExtractor) Kind() types.FileKind {
	return types.FileKindImage
}

// Extract decodes inputFile, runs OCR and aggregates token confidences
func (e *ImageExtractor) Extract(ctx context.Context, inputFile string) (types.Envelope, error) {
	result, err := e.process(ctx, inputFile)
	if err != nil {
		msg := fmt.Sprintf("Error processing image %s: %s", inputFile, utils.Detail(err))
		e.logger.Error("%s", msg)
		return types.NewImageFailure(msg), utils.NewDecodeError(msg, err).WithContext("file", inputFile)
	}

	e.logger.Info("Successfully processed image: %s", inputFile)
	return result, nil
}

func (e *ImageExtractor) process(ctx context.Context, inputFile string) (*types.ImageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metadata, err := readImageMetadata(inputFile)
	if err != nil {
		return nil, err
	}

	if e.engine == nil {
		return nil, utils.NewOCRError("no OCR engine configured", nil)
	}
	e.logger.Debug("Using OCR engine %s for %s", e.engine.Name(), inputFile)

	text, err := e.engine.ExtractText(ctx, inputFile)
	if err != nil {
		return nil, err
	}
	confidences, err := e.engine.TokenConfidences(ctx, inputFile)
	if err != nil {
		return nil, err
	}

	return &types.ImageResult{
		Metadata:         *metadata,
		ExtractedText:    strings.TrimSpace(text),
		ConfidenceScore:  ocr.AggregateConfidence(confidences),
		ProcessingStatus: types.StatusSuccess,
	}, nil
}

// readImageMetadata decodes the whole image so corrupt pixel data fails here
func readImageMetadata(path string) (*types.ImageMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot identify image file %s: %w", path, err)
	}

	bounds := img.Bounds()
	return &types.ImageMetadata{
		Format: strings.ToUpper(format),
		Size:   [2]int{bounds.Dx(), bounds.Dy()},
		Mode:   pixelMode(img),
	}, nil
}

// pixelMode names the channel layout: L, I;16, P, CMYK, RGB or RGBA
func pixelMode(img image.Image) string {
	switch m := img.(type) {
	case *image.Gray:
		return "L"
	case *image.Gray16:
		return "I;16"
	case *image.Paletted:
		return "P"
	case *image.CMYK:
		return "CMYK"
	case *image.YCbCr:
		return "RGB"
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return "RGB"
		}
		return "RGBA"
	default:
		return "RGBA"
	}
}
