package providers

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/net/html/charset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/nodewee/doc-to-json/pkg/config"
	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/interfaces"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/types"
	"github.com/nodewee/doc-to-json/pkg/utils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExtractor loads delimited files into a dataframe and reports rows plus
// per-column statistics
type CSVExtractor struct {
	delimiter  rune
	encoding   string
	nullTokens []string
	logger     logger.Logger
}

// NewCSVExtractor creates a CSV extractor using the delimiter and encoding from cfg
func NewCSVExtractor(cfg *config.Config, log logger.Logger) interfaces.Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &CSVExtractor{
		delimiter:  cfg.Delimiter(),
		encoding:   cfg.CSVEncoding,
		nullTokens: constants.CSVNullTokens,
		logger:     log.Named("csv_processor"),
	}
}

// Name returns the name of the extractor
func (e *CSVExtractor) Name() string {
	return "csv"
}

// Kind returns the file family handled by this extractor
func (e *CSVExtractor) Kind() types.FileKind {
	return types.FileKindCSV
}

// Extract parses inputFile. On failure it returns the CSV error envelope and a decode error.
func (e *CSVExtractor) Extract(ctx context.Context, inputFile string) (types.Envelope, error) {
	result, err := e.process(ctx, inputFile)
	if err != nil {
		msg := fmt.Sprintf("Error processing CSV %s: %s", inputFile, utils.Detail(err))
		e.logger.Error("%s", msg)
		return types.NewTabularFailure(msg), utils.NewDecodeError(msg, err).WithContext("file", inputFile)
	}

	e.logger.Info("Successfully processed CSV: %s", inputFile)
	return result, nil
}

func (e *CSVExtractor) process(ctx context.Context, inputFile string) (*types.TabularResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := utils.GetFileInfo(inputFile)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, err
	}

	text, err := decodeText(raw, e.encoding)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, errors.New("no columns to parse from file")
	}

	records, err := e.readRecords(text)
	if err != nil {
		return nil, err
	}

	df := e.loadFrame(records)
	if df.Err != nil {
		return nil, df.Err
	}

	names := df.Names()
	columns := make([]series.Series, len(names))
	stats := types.NewOrderedMap[types.ColumnStatistics]()
	for i, name := range names {
		columns[i] = df.Col(name)
		stats.Set(name, columnStatistics(columns[i]))
	}

	rows := make([]types.Row, 0, df.Nrow())
	for r := 0; r < df.Nrow(); r++ {
		row := types.NewOrderedMap[any]()
		for i, name := range names {
			row.Set(name, nativeValue(columns[i].Elem(r)))
		}
		rows = append(rows, row)
	}

	e.logger.Debug("Parsed %d rows and %d columns from %s", df.Nrow(), len(names), inputFile)

	return &types.TabularResult{
		Metadata: types.TabularMetadata{
			RowCount:    df.Nrow(),
			ColumnCount: len(names),
			Columns:     names,
			FileName:    info.Name,
			FileSize:    info.Size,
		},
		ColumnStatistics: stats,
		Data:             rows,
		ProcessingStatus: types.StatusSuccess,
	}, nil
}

// readRecords splits text into records. Rows shorter than the header are
// padded with empty (missing) fields; longer rows are rejected.
func (e *CSVExtractor) readRecords(text []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = e.delimiter
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			width := len(records[0])
			if len(record) > width {
				line, _ := r.FieldPos(0)
				return nil, fmt.Errorf("record on line %d: wrong number of fields", line)
			}
			for len(record) < width {
				record = append(record, "")
			}
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, errors.New("no columns to parse from file")
	}
	return records, nil
}

// loadFrame builds the dataframe; a header without rows yields empty
// string columns
func (e *CSVExtractor) loadFrame(records [][]string) dataframe.DataFrame {
	if len(records) == 1 {
		columns := make([]series.Series, len(records[0]))
		for i, name := range records[0] {
			columns[i] = series.New([]string{}, series.String, name)
		}
		return dataframe.New(columns...)
	}
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(e.nullTokens),
	)
}

// decodeText converts raw bytes in the labelled encoding to UTF-8
func decodeText(raw []byte, label string) ([]byte, error) {
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unknown encoding: %s", label)
	}

	if name == "utf-8" {
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("invalid utf-8 byte sequence at offset %d", invalidUTF8Offset(raw))
		}
		return raw, nil
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// dtypeOf names a column type the way dataframe dtypes are usually printed.
// Integer columns holding missing values are reported as float64.
func dtypeOf(s series.Series, hasNull bool) string {
	switch s.Type() {
	case series.Int:
		if hasNull {
			return "float64"
		}
		return "int64"
	case series.Float:
		return "float64"
	case series.Bool:
		return "bool"
	default:
		return "object"
	}
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

// columnStatistics counts nulls and distinct values; missing values of any
// spelling share one bucket
func columnStatistics(s series.Series) types.ColumnStatistics {
	var nulls int
	distinct := make(map[string]struct{})
	var values []float64

	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			nulls++
			continue
		}
		distinct[fmt.Sprint(el.Val())] = struct{}{}
		if isNumeric(s.Type()) {
			values = append(values, el.Float())
		}
	}

	unique := len(distinct)
	if nulls > 0 {
		unique++
	}

	st := types.ColumnStatistics{
		Dtype:        dtypeOf(s, nulls > 0),
		NullCount:    nulls,
		UniqueValues: unique,
	}
	if isNumeric(s.Type()) {
		st.NumericSummary = summarize(values, s.Type() == series.Int && nulls == 0)
	}
	return st
}

// summarize computes NaN-skipping aggregates; an empty input yields nulls
func summarize(values []float64, integral bool) *types.NumericSummary {
	if len(values) == 0 {
		return &types.NumericSummary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var median float64
	if n := len(sorted); n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	lo, hi := floats.Min(values), floats.Max(values)
	summary := &types.NumericSummary{
		Mean:   finite(stat.Mean(values, nil)),
		Median: finite(median),
	}
	if integral {
		summary.Min, summary.Max = int(lo), int(hi)
	} else {
		summary.Min, summary.Max = finite(lo), finite(hi)
	}
	return summary
}

// finite returns v, or nil when v cannot be represented in JSON
func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
