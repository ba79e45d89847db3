package providers

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nodewee/doc-to-json/pkg/interfaces"
	"github.com/nodewee/doc-to-json/pkg/layout"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/types"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

// PDFExtractor validates a PDF with pdfcpu and rebuilds the text of every
// page from its positioned glyphs
type PDFExtractor struct {
	params layout.Params
	logger logger.Logger
}

// NewPDFExtractor creates a PDF extractor using the default layout parameters
func NewPDFExtractor(log logger.Logger) interfaces.Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFExtractor{
		params: layout.DefaultParams(),
		logger: log.Named("pdf_processor"),
	}
}

// Name returns the name of the extractor
func (e *PDFExtractor) Name() string {
	return "pdf"
}

// Kind returns the file family handled by this extractor
func (e *PDFExtractor) Kind() types.FileKind {
	return types.FileKindPDF
}

// Extract reads every page of inputFile in order
func (e *PDFExtractor) Extract(ctx context.Context, inputFile string) (types.Envelope, error) {
	result, err := e.process(ctx, inputFile)
	if err != nil {
		msg := fmt.Sprintf("Error processing PDF %s: %s", inputFile, utils.Detail(err))
		e.logger.Error("%s", msg)
		return types.NewDocumentFailure(msg), utils.NewDecodeError(msg, err).WithContext("file", inputFile)
	}

	e.logger.Info("Successfully processed PDF: %s", inputFile)
	return result, nil
}

func (e *PDFExtractor) process(ctx context.Context, inputFile string) (result *types.DocumentResult, err error) {
	// the glyph reader panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("malformed PDF content: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := utils.GetFileInfo(inputFile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	docInfo := types.DocumentInfo{
		Title:    pdfCtx.Title,
		Author:   pdfCtx.Author,
		Creator:  pdfCtx.Creator,
		Producer: pdfCtx.Producer,
	}
	pageCount := pdfCtx.PageCount

	// glyphs are read from pdfcpu's rewrite, which carries a repaired xref table
	var repaired bytes.Buffer
	if err := api.WriteContext(pdfCtx, &repaired); err != nil {
		return nil, fmt.Errorf("pdfcpu write: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(repaired.Bytes()), int64(repaired.Len()))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]types.PageRecord, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content := strings.TrimSpace(e.pageText(reader.Page(i)))
		pages = append(pages, types.PageRecord{
			PageNumber: i,
			Content:    content,
			WordCount:  len(strings.Fields(content)),
		})
	}
	e.logger.Debug("Extracted %d pages from %s", len(pages), inputFile)

	metadata := types.DocumentMetadata{
		TotalPages: pageCount,
		FileName:   info.Name,
		FileSize:   info.Size,
	}
	if !docInfo.IsZero() {
		metadata.DocumentInfo = &docInfo
	}

	return &types.DocumentResult{
		Metadata:         metadata,
		Pages:            pages,
		ProcessingStatus: types.StatusSuccess,
	}, nil
}

func (e *PDFExtractor) pageText(page pdf.Page) string {
	if page.V.IsNull() {
		return ""
	}

	content := page.Content()
	glyphs := make([]layout.Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, layout.Glyph{
			X:     t.X,
			Y:     t.Y,
			Width: t.W,
			Size:  t.FontSize,
			Text:  t.S,
		})
	}
	return layout.Reconstruct(glyphs, e.params)
}
