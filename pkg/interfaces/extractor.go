package interfaces

import (
	"context"

	"github.com/nodewee/doc-to-json/pkg/types"
)

// Extractor converts one file into a result envelope.
//
// On failure Extract returns the format's error envelope together with a
// non-nil *utils.AppError of type decode, so callers can both persist the
// placeholder shape and inspect the failure kind.
type Extractor interface {
	// Extract reads inputFile and builds its envelope
	Extract(ctx context.Context, inputFile string) (types.Envelope, error)

	// Kind returns the file family this extractor handles
	Kind() types.FileKind

	// Name returns the name of the extractor
	Name() string
}

// ExtractorFactory selects extractors by file extension
type ExtractorFactory interface {
	// CreateExtractor returns the extractor for the file's extension
	CreateExtractor(inputFile string) (Extractor, error)

	// RegisterExtractor registers an extractor for a file family
	RegisterExtractor(extractor Extractor)

	// ListExtractors returns the names of all registered extractors
	ListExtractors() []string
}

// ResultWriter persists an envelope to disk
type ResultWriter interface {
	Save(v any, outputPath string) error
}

// FileProcessor routes files to extractors and writes their results
type FileProcessor interface {
	// ProcessFile processes one file. The returned error is non-nil only when
	// writing the result failed.
	ProcessFile(ctx context.Context, inputFile string) (*types.FileOutcome, error)

	// BatchProcess processes files sequentially in the given order
	BatchProcess(ctx context.Context, inputFiles []string) (*types.BatchOutcome, error)

	// OutputDir returns where results are written
	OutputDir() string
}
