package core

import (
	"sort"

	"github.com/nodewee/doc-to-json/pkg/config"
	"github.com/nodewee/doc-to-json/pkg/interfaces"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/ocr"
	"github.com/nodewee/doc-to-json/pkg/providers"
	"github.com/nodewee/doc-to-json/pkg/types"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

// DefaultExtractorFactory implements ExtractorFactory
type DefaultExtractorFactory struct {
	extractors map[types.FileKind]interfaces.Extractor
	config     *config.Config
	logger     logger.Logger
}

// NewExtractorFactory creates a factory with the CSV, image and PDF extractors registered
func NewExtractorFactory(cfg *config.Config, log logger.Logger) interfaces.ExtractorFactory {
	factory := newEmptyFactory(cfg, log)
	factory.registerDefaultExtractors()
	return factory
}

func newEmptyFactory(cfg *config.Config, log logger.Logger) *DefaultExtractorFactory {
	if log == nil {
		log = logger.Nop()
	}
	return &DefaultExtractorFactory{
		extractors: make(map[types.FileKind]interfaces.Extractor),
		config:     cfg,
		logger:     log,
	}
}

// CreateExtractor returns the extractor for the file's extension
func (f *DefaultExtractorFactory) CreateExtractor(inputFile string) (interfaces.Extractor, error) {
	ext := utils.Extension(inputFile)
	kind := utils.DetectFileKind(inputFile)

	extractor, ok := f.extractors[kind]
	if !ok {
		return nil, utils.NewUnsupportedError("Unsupported file type: "+ext, nil).WithContext("file", inputFile)
	}

	f.logger.Debug("Selected extractor '%s' for file type %s", extractor.Name(), ext)
	return extractor, nil
}

// RegisterExtractor registers an extractor for its file family, replacing any previous one
func (f *DefaultExtractorFactory) RegisterExtractor(extractor interfaces.Extractor) {
	f.extractors[extractor.Kind()] = extractor
	f.logger.Debug("Registered extractor: %s", extractor.Name())
}

// ListExtractors returns all registered extractor names, sorted
func (f *DefaultExtractorFactory) ListExtractors() []string {
	names := make([]string, 0, len(f.extractors))
	for _, extractor := range f.extractors {
		names = append(names, extractor.Name())
	}
	sort.Strings(names)
	return names
}

func (f *DefaultExtractorFactory) registerDefaultExtractors() {
	f.RegisterExtractor(providers.NewCSVExtractor(f.config, f.logger))

	engine, err := ocr.NewTesseractEngine(f.config, f.logger)
	if err != nil {
		f.logger.Warn("OCR unavailable, image files will fail: %v", err)
		engine = ocr.Unavailable(err)
	}
	f.RegisterExtractor(providers.NewImageExtractor(engine, f.logger))

	f.RegisterExtractor(providers.NewPDFExtractor(f.logger))

	f.logger.Debug("Registered %d extractors: %v", len(f.extractors), f.ListExtractors())
}
