package core

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-to-json/pkg/config"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/output"
	"github.com/nodewee/doc-to-json/pkg/types"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

// fakeExtractor returns a canned envelope, or a decode failure when fail is set
type fakeExtractor struct {
	kind  types.FileKind
	fail  bool
	calls []string
}

func (f *fakeExtractor) Name() string         { return "fake-" + string(f.kind) }
func (f *fakeExtractor) Kind() types.FileKind { return f.kind }

func (f *fakeExtractor) Extract(_ context.Context, inputFile string) (types.Envelope, error) {
	f.calls = append(f.calls, inputFile)
	if f.fail {
		msg := "Error processing fake " + inputFile + ": corrupt"
		return types.NewImageFailure(msg), utils.NewDecodeError(msg, errors.New("corrupt"))
	}
	return &types.ImageResult{
		Metadata:         types.ImageMetadata{Format: "PNG", Size: [2]int{1, 1}, Mode: "L"},
		ExtractedText:    "text of " + filepath.Base(inputFile) + " <b>&</b>",
		ConfidenceScore:  90,
		ProcessingStatus: types.StatusSuccess,
	}, nil
}

type failingWriter struct{}

func (failingWriter) Save(_ any, outputPath string) error {
	return utils.NewWriteError("disk full", errors.New("no space left on device")).WithContext("path", outputPath)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "processed")
	return cfg
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newProcessor(t *testing.T) *DefaultFileProcessor {
	t.Helper()
	p, err := NewFileProcessor(testConfig(t), logger.Nop())
	require.NoError(t, err)
	return p
}

func outputFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewFileProcessorCreatesOutputDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDir = filepath.Join(cfg.OutputDir, "nested", "deeper")

	p, err := NewFileProcessor(cfg, nil)
	require.NoError(t, err)
	assert.DirExists(t, cfg.OutputDir)
	assert.Equal(t, cfg.OutputDir, p.OutputDir())
}

func TestNewFileProcessorRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "loud"

	_, err := NewFileProcessor(cfg, logger.Nop())
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
}

func TestProcessFileCSVSuccess(t *testing.T) {
	p := newProcessor(t)
	input := writeInput(t, "sales.csv", "region,total\nnorth,10\nsouth,20\n")

	outcome, err := p.ProcessFile(context.Background(), input)
	require.NoError(t, err)
	require.True(t, outcome.Succeeded())
	assert.Empty(t, outcome.ErrorMessage)
	assert.Equal(t, filepath.Join(p.OutputDir(), "sales_processed.json"), outcome.OutputPath)

	written, err := os.ReadFile(outcome.OutputPath)
	require.NoError(t, err)
	expected, err := output.Encode(outcome.Results)
	require.NoError(t, err)
	assert.Equal(t, expected, written)
	assert.True(t, bytes.HasSuffix(written, []byte("}\n")))

	result, ok := outcome.Results.(*types.TabularResult)
	require.True(t, ok)
	assert.Equal(t, 2, result.Metadata.RowCount)
}

func TestProcessFileUnsupported(t *testing.T) {
	p := newProcessor(t)
	input := writeInput(t, "notes.txt", "hello")

	outcome, err := p.ProcessFile(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, types.StatusError, outcome.ProcessingStatus)
	assert.Equal(t, "Unsupported file type: .txt", outcome.ErrorMessage)
	assert.Empty(t, outcome.OutputPath)
	assert.Nil(t, outcome.Results)
	assert.Empty(t, outputFiles(t, p.OutputDir()))

	raw, err := output.Encode(outcome)
	require.NoError(t, err)
	assert.JSONEq(t, `{"processing_status":"error","error_message":"Unsupported file type: .txt"}`, string(raw))
}

func TestProcessFileExtensionIsCaseInsensitive(t *testing.T) {
	p := newProcessor(t)
	input := writeInput(t, "UPPER.CSV", "a\n1\n")

	outcome, err := p.ProcessFile(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, filepath.Join(p.OutputDir(), "UPPER_processed.json"), outcome.OutputPath)
}

func TestProcessFileMalformedInputs(t *testing.T) {
	p := newProcessor(t)

	var img bytes.Buffer
	require.NoError(t, pngEncode(&img))

	inputs := []string{
		writeInput(t, "broken.csv", "a,b\n1,2,3\n"),
		writeInput(t, "broken.pdf", "definitely not a pdf"),
		writeInput(t, "broken.png", "not an image"),
		writeInput(t, "scan.png", img.String()),
		filepath.Join(t.TempDir(), "missing.csv"),
	}

	for _, input := range inputs {
		outcome, err := p.ProcessFile(context.Background(), input)
		require.NoError(t, err, input)
		assert.Equal(t, types.StatusError, outcome.ProcessingStatus, input)
		assert.Contains(t, outcome.ErrorMessage, "Error processing file "+input+": ", input)
		assert.Nil(t, outcome.Results, input)
	}
	assert.Empty(t, outputFiles(t, p.OutputDir()))
}

func pngEncode(buf *bytes.Buffer) error {
	return png.Encode(buf, image.NewGray(image.Rect(0, 0, 4, 4)))
}

func TestProcessFileIsDeterministic(t *testing.T) {
	p := newProcessor(t)
	input := writeInput(t, "repeat.csv", "name,score\nAna,1.5\nBo,\n")

	first, err := p.ProcessFile(context.Background(), input)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)

	second, err := p.ProcessFile(context.Background(), input)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, first.OutputPath, second.OutputPath)
	assert.Equal(t, firstBytes, secondBytes)
}

func TestProcessFileRoutesByKind(t *testing.T) {
	cfg := testConfig(t)
	factory := newEmptyFactory(cfg, nil)
	fakes := map[types.FileKind]*fakeExtractor{}
	for _, kind := range []types.FileKind{types.FileKindImage, types.FileKindPDF, types.FileKindCSV} {
		fakes[kind] = &fakeExtractor{kind: kind}
		factory.RegisterExtractor(fakes[kind])
	}
	p, err := NewFileProcessorWith(cfg, logger.Nop(), factory, output.NewJSONWriter(nil))
	require.NoError(t, err)

	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.tiff", "e.bmp", "f.pdf", "g.csv"} {
		outcome, err := p.ProcessFile(context.Background(), name)
		require.NoError(t, err)
		assert.True(t, outcome.Succeeded(), name)
		assert.FileExists(t, outcome.OutputPath)
	}

	assert.Equal(t, []string{"a.png", "b.JPG", "c.jpeg", "d.tiff", "e.bmp"}, fakes[types.FileKindImage].calls)
	assert.Equal(t, []string{"f.pdf"}, fakes[types.FileKindPDF].calls)
	assert.Equal(t, []string{"g.csv"}, fakes[types.FileKindCSV].calls)

	written, err := os.ReadFile(filepath.Join(cfg.OutputDir, "a_processed.json"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "text of a.png <b>&</b>")
}

func TestProcessFileWriteFailure(t *testing.T) {
	cfg := testConfig(t)
	factory := newEmptyFactory(cfg, nil)
	factory.RegisterExtractor(&fakeExtractor{kind: types.FileKindImage})
	p, err := NewFileProcessorWith(cfg, logger.Nop(), factory, failingWriter{})
	require.NoError(t, err)

	outcome, err := p.ProcessFile(context.Background(), "scan.png")
	require.Error(t, err)
	assert.True(t, utils.IsWriteFailure(err))
	assert.Equal(t, types.StatusError, outcome.ProcessingStatus)
	assert.Equal(t, "Error processing file scan.png: no space left on device", outcome.ErrorMessage)
}

func TestFactoryListsDefaultExtractors(t *testing.T) {
	factory := NewExtractorFactory(testConfig(t), logger.Nop())
	assert.Equal(t, []string{"csv", "image", "pdf"}, factory.ListExtractors())

	_, err := factory.CreateExtractor("archive.zip")
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeUnsupported, utils.GetErrorType(err))

	extractor, err := factory.CreateExtractor("photo.JPEG")
	require.NoError(t, err)
	assert.Equal(t, types.FileKindImage, extractor.Kind())
}

func TestProcessFileDecodeFailureWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	factory := newEmptyFactory(cfg, nil)
	factory.RegisterExtractor(&fakeExtractor{kind: types.FileKindPDF, fail: true})
	p, err := NewFileProcessorWith(cfg, logger.Nop(), factory, output.NewJSONWriter(nil))
	require.NoError(t, err)

	outcome, err := p.ProcessFile(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Error processing file scan.pdf: corrupt", outcome.ErrorMessage)
	assert.Empty(t, outputFiles(t, cfg.OutputDir))
}

func TestProcessFileNonFiniteCSV(t *testing.T) {
	p := newProcessor(t)

	for name, content := range map[string]string{
		"infinite.csv": "a\n1\ninf\n",
		"overflow.csv": "a\n1e308\n1e308\n",
	} {
		input := writeInput(t, name, content)
		outcome, err := p.ProcessFile(context.Background(), input)
		require.NoError(t, err, name)
		require.True(t, outcome.Succeeded(), name)

		written, err := os.ReadFile(outcome.OutputPath)
		require.NoError(t, err)
		assert.Contains(t, string(written), `"mean": null`, name)
	}
}

func TestProcessFileCSVWithStaleTesseractPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.TesseractPath = filepath.Join(t.TempDir(), "removed", "tesseract")

	p, err := NewFileProcessor(cfg, logger.Nop())
	require.NoError(t, err)

	outcome, err := p.ProcessFile(context.Background(), writeInput(t, "only.csv", "a\n1\n"))
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())

	var img bytes.Buffer
	require.NoError(t, pngEncode(&img))
	outcome, err = p.ProcessFile(context.Background(), writeInput(t, "scan.png", img.String()))
	require.NoError(t, err)
	assert.Equal(t, types.StatusError, outcome.ProcessingStatus)
	assert.Contains(t, outcome.ErrorMessage, "tesseract binary is not executable")
}

func TestProcessFileLogsPathsVerbatim(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig(t)
	p, err := NewFileProcessor(cfg, logger.NewLoggerTo(&logs, "debug", false))
	require.NoError(t, err)

	input := writeInput(t, "report%20v2.csv", "a,b\n1,2,3\n")
	outcome, err := p.ProcessFile(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, types.StatusError, outcome.ProcessingStatus)

	assert.Contains(t, logs.String(), "Error processing file "+input+": ")
	assert.NotContains(t, logs.String(), "%!")
}

func TestNewFileProcessorKeepsItsOwnConfig(t *testing.T) {
	cfg := testConfig(t)
	want := cfg.OutputDir

	p, err := NewFileProcessor(cfg, logger.Nop())
	require.NoError(t, err)
	cfg.OutputDir = filepath.Join(t.TempDir(), "elsewhere")

	assert.Equal(t, want, p.OutputDir())
}
