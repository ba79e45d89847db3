package ocr

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nodewee/doc-to-json/pkg/config"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateConfidence(t *testing.T) {
	tests := []struct {
		name  string
		confs []float64
		want  float64
	}{
		{name: "sentinels skipped", confs: []float64{90, -1, 80, -1}, want: 85},
		{name: "no tokens", confs: nil, want: 0},
		{name: "only sentinels", confs: []float64{-1, -1}, want: 0},
		{name: "rounded to two decimals", confs: []float64{91.5, 88.25, 70.126}, want: 83.29},
		{name: "zero confidence counts", confs: []float64{0, 50}, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateConfidence(tt.confs))
		})
	}
}

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t640\t480\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t36\t92\t60\t20\t96.063751\tHello\n" +
	"5\t1\t1\t1\t1\t2\t106\t92\t70\t20\t91.5\tworld\n"

func TestParseTSVConfidences(t *testing.T) {
	confs, err := ParseTSVConfidences([]byte(sampleTSV))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 96.063751, 91.5}, confs)

	_, err = ParseTSVConfidences([]byte("a\tb\n1\t2\n"))
	assert.Error(t, err)

	confs, err = ParseTSVConfidences(nil)
	require.NoError(t, err)
	assert.Empty(t, confs)
}

func TestNewTesseractEngineRequiresPath(t *testing.T) {
	cfg := config.NewConfig()
	_, err := NewTesseractEngine(cfg, logger.Nop())
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeOCR, utils.GetErrorType(err))
}

func TestNewTesseractEngineRejectsMissingBinary(t *testing.T) {
	cfg := config.NewConfig()
	cfg.TesseractPath = filepath.Join(t.TempDir(), "no-such-tesseract")

	_, err := NewTesseractEngine(cfg, logger.Nop())
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeOCR, utils.GetErrorType(err))
	assert.Contains(t, err.Error(), "tesseract binary is not executable")
}

// fakeTesseract writes a shell script that mimics "tesseract img stdout [-l lang] [tsv]"
func fakeTesseract(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tesseract is a shell script")
	}
	path := filepath.Join(t.TempDir(), "tesseract")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestTesseractEngineRunsBinary(t *testing.T) {
	script := `for last; do :; done
if [ "$last" = "tsv" ]; then
  printf 'level\tconf\ttext\n5\t90\tHello\n5\t-1\t\n5\t80\tworld\n'
else
  printf '  Hello world\n\f'
fi
`
	cfg := config.NewConfig()
	cfg.TesseractPath = fakeTesseract(t, script)

	engine, err := NewTesseractEngine(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "tesseract", engine.Name())

	text, err := engine.ExtractText(context.Background(), "img.png")
	require.NoError(t, err)
	assert.Equal(t, "  Hello world\n\f", text)

	confs, err := engine.TokenConfidences(context.Background(), "img.png")
	require.NoError(t, err)
	assert.Equal(t, []float64{90, -1, 80}, confs)
	assert.Equal(t, 85.0, AggregateConfidence(confs))
}

func TestTesseractEngineReportsFailure(t *testing.T) {
	cfg := config.NewConfig()
	cfg.TesseractPath = fakeTesseract(t, "echo 'Error in pixReadStream' >&2\nexit 1\n")

	engine, err := NewTesseractEngine(cfg, logger.Nop())
	require.NoError(t, err)

	_, err = engine.ExtractText(context.Background(), "broken.png")
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeOCR, utils.GetErrorType(err))
	assert.Contains(t, err.Error(), "Error in pixReadStream")
}
