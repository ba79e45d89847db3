package ocr

import (
	"bufio"
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

// AggregateConfidence averages every confidence that is not the no-confidence
// sentinel and rounds to two decimals. It returns 0 when nothing qualifies.
func AggregateConfidence(confidences []float64) float64 {
	var sum float64
	var n int
	for _, c := range confidences {
		if c == constants.NoConfidence {
			continue
		}
		sum += c
		n++
	}
	if n == 0 {
		return 0
	}
	return round(sum/float64(n), constants.ConfidenceDecimals)
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// ParseTSVConfidences reads the conf column from tesseract TSV output
func ParseTSVConfidences(tsv []byte) ([]float64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(tsv))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	confIdx := -1
	var confidences []float64
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if confIdx < 0 {
			for i, name := range fields {
				if strings.TrimSpace(name) == "conf" {
					confIdx = i
				}
			}
			if confIdx < 0 {
				return nil, utils.NewOCRError("tesseract TSV output has no conf column", nil)
			}
			continue
		}
		if confIdx >= len(fields) {
			continue
		}
		conf, err := strconv.ParseFloat(strings.TrimSpace(fields[confIdx]), 64)
		if err != nil {
			continue
		}
		confidences = append(confidences, conf)
	}
	if err := scanner.Err(); err != nil {
		return nil, utils.NewOCRError("failed to read tesseract TSV output", err)
	}
	return confidences, nil
}
