package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

// JSONWriter persists result envelopes as pretty-printed UTF-8 JSON
type JSONWriter struct {
	logger logger.Logger
}

// NewJSONWriter creates a writer reporting through log
func NewJSONWriter(log logger.Logger) *JSONWriter {
	if log == nil {
		log = logger.Nop()
	}
	return &JSONWriter{logger: log}
}

// Encode renders v with two-space indentation, literal non-ASCII and
// unescaped HTML characters, terminated by a newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", constants.JSONIndent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes v to outputPath, creating parent directories as needed.
// Failures are logged and returned; they are never swallowed.
func (w *JSONWriter) Save(v any, outputPath string) error {
	data, err := Encode(v)
	if err != nil {
		w.logger.Error("Error saving output to %s: %v", outputPath, err)
		return utils.NewWriteError("failed to serialize output", err).WithContext("path", outputPath)
	}

	if err := utils.EnsureDir(filepath.Dir(outputPath)); err != nil {
		w.logger.Error("Error saving output to %s: %v", outputPath, err)
		return utils.NewWriteError("failed to create output directory", err).WithContext("path", outputPath)
	}

	if err := os.WriteFile(outputPath, data, constants.DefaultFilePermission); err != nil {
		w.logger.Error("Error saving output to %s: %v", outputPath, err)
		return utils.NewWriteError("failed to write output file", err).WithContext("path", outputPath)
	}

	w.logger.Info("Successfully saved output to %s", outputPath)
	return nil
}
