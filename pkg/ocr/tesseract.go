package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nodewee/doc-to-json/pkg/config"
	"github.com/nodewee/doc-to-json/pkg/interfaces"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

// TesseractEngine runs the tesseract command line tool
type TesseractEngine struct {
	binary   string
	language string
	logger   logger.Logger
}

// NewTesseractEngine creates an engine for the binary configured in cfg.
// The path must name an executable file or a command found in PATH.
func NewTesseractEngine(cfg *config.Config, log logger.Logger) (interfaces.OCREngine, error) {
	if cfg.TesseractPath == "" {
		return nil, utils.NewOCRError("tesseract path is not configured (set tesseract_path or TESSERACT_PATH)", nil)
	}
	if !utils.DefaultPathUtils.IsExecutable(cfg.TesseractPath) {
		if _, err := exec.LookPath(cfg.TesseractPath); err != nil {
			return nil, utils.NewOCRError("tesseract binary is not executable: "+cfg.TesseractPath, nil)
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TesseractEngine{
		binary:   cfg.TesseractPath,
		language: cfg.TesseractLanguage,
		logger:   log,
	}, nil
}

// Name returns the name of the OCR tool
func (e *TesseractEngine) Name() string {
	return "tesseract"
}

// ExtractText returns the recognized text of an image
func (e *TesseractEngine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	out, err := e.run(ctx, imagePath)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// TokenConfidences returns the conf column of tesseract's TSV output
func (e *TesseractEngine) TokenConfidences(ctx context.Context, imagePath string) ([]float64, error) {
	out, err := e.run(ctx, imagePath, "tsv")
	if err != nil {
		return nil, err
	}
	return ParseTSVConfidences(out)
}

func (e *TesseractEngine) run(ctx context.Context, imagePath string, configs ...string) ([]byte, error) {
	args := []string{imagePath, "stdout"}
	if e.language != "" {
		args = append(args, "-l", e.language)
	}
	args = append(args, configs...)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("Running OCR command: %s", cmd.String())
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, utils.NewOCRError(fmt.Sprintf("tesseract failed: %s", msg), err)
	}
	return stdout.Bytes(), nil
}

// unavailableEngine stands in when no OCR binary could be configured, so the
// failure surfaces per image file instead of at startup
type unavailableEngine struct {
	err error
}

// Unavailable returns an engine whose every call fails with err
func Unavailable(err error) interfaces.OCREngine {
	return unavailableEngine{err: err}
}

func (u unavailableEngine) Name() string { return "unavailable" }

func (u unavailableEngine) ExtractText(context.Context, string) (string, error) {
	return "", u.err
}

func (u unavailableEngine) TokenConfidences(context.Context, string) ([]float64, error) {
	return nil, u.err
}
