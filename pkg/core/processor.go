package core

import (
	"context"
	"fmt"

	"github.com/nodewee/doc-to-json/pkg/config"
	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/interfaces"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/output"
	"github.com/nodewee/doc-to-json/pkg/types"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

var _ interfaces.FileProcessor = (*DefaultFileProcessor)(nil)

// DefaultFileProcessor implements FileProcessor
type DefaultFileProcessor struct {
	config  *config.Config
	logger  logger.Logger
	factory interfaces.ExtractorFactory
	writer  interfaces.ResultWriter
}

// NewFileProcessor validates cfg, creates the output directory and wires the
// default extractors and JSON writer
func NewFileProcessor(cfg *config.Config, log logger.Logger) (*DefaultFileProcessor, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	return NewFileProcessorWith(cfg, log, NewExtractorFactory(cfg, log), output.NewJSONWriter(log.Named("output")))
}

// NewFileProcessorWith builds a processor around the given factory and writer
func NewFileProcessorWith(cfg *config.Config, log logger.Logger, factory interfaces.ExtractorFactory, writer interfaces.ResultWriter) (*DefaultFileProcessor, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return nil, utils.NewWriteError(fmt.Sprintf("cannot create output directory %s", cfg.OutputDir), err)
	}

	p := &DefaultFileProcessor{
		config:  cfg,
		logger:  log.Named("file_processor"),
		factory: factory,
		writer:  writer,
	}
	p.logger.Debug("File processor ready, output directory: %s, extractors: %v", cfg.OutputDir, factory.ListExtractors())
	return p, nil
}

// OutputDir returns where results are written
func (p *DefaultFileProcessor) OutputDir() string {
	return p.config.OutputDir
}

// ProcessFile routes inputFile to its extractor and writes the result next
// to the other outputs. Unsupported and undecodable files become error
// outcomes; only a failed write is returned as an error.
func (p *DefaultFileProcessor) ProcessFile(ctx context.Context, inputFile string) (*types.FileOutcome, error) {
	extractor, err := p.factory.CreateExtractor(inputFile)
	if err != nil {
		p.logger.Error("%s", utils.Detail(err))
		return types.NewFileFailure(utils.Detail(err)), nil
	}

	p.logger.Debug("Processing %s with %s extractor", inputFile, extractor.Name())
	p.warnIfLarge(inputFile)
	envelope, err := extractor.Extract(ctx, inputFile)
	if err != nil {
		msg := fmt.Sprintf("Error processing file %s: %s", inputFile, utils.Detail(err))
		p.logger.Error("%s", msg)
		return types.NewFileFailure(msg), nil
	}

	outputPath := utils.OutputPathFor(p.config.OutputDir, inputFile)
	if err := p.writer.Save(envelope, outputPath); err != nil {
		msg := fmt.Sprintf("Error processing file %s: %s", inputFile, utils.Detail(err))
		p.logger.Error("%s", msg)
		return types.NewFileFailure(msg), err
	}

	p.logger.Info("Successfully processed file: %s", inputFile)
	return types.NewFileSuccess(outputPath, envelope), nil
}

// warnIfLarge flags inputs above the size warning threshold; they are still processed
func (p *DefaultFileProcessor) warnIfLarge(inputFile string) {
	info, err := utils.GetFileInfo(inputFile)
	if err != nil {
		return
	}
	if info.Size > constants.WarnFileSizeLimit {
		p.logger.Warn("Large file detected (%d bytes), processing may take longer: %s", info.Size, inputFile)
	}
}
