package types

// Row is one CSV record keyed by column name in file order
type Row = *OrderedMap[any]

// TabularMetadata describes a parsed CSV file
type TabularMetadata struct {
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
	Columns     []string `json:"columns"`
	FileName    string   `json:"file_name"`
	FileSize    int64    `json:"file_size"`
}

// NumericSummary holds the aggregates reported for numeric columns only.
// A nil value marshals as null when the column has no non-missing values.
type NumericSummary struct {
	Min    any `json:"min"`
	Max    any `json:"max"`
	Mean   any `json:"mean"`
	Median any `json:"median"`
}

// ColumnStatistics is the per-column statistics record. The numeric keys are
// absent when NumericSummary is nil.
type ColumnStatistics struct {
	Dtype        string `json:"dtype"`
	NullCount    int    `json:"null_count"`
	UniqueValues int    `json:"unique_values"`
	*NumericSummary
}

// TabularResult is the success envelope for CSV files
type TabularResult struct {
	Metadata         TabularMetadata                `json:"metadata"`
	ColumnStatistics *OrderedMap[ColumnStatistics] `json:"column_statistics"`
	Data             []Row                          `json:"data"`
	ProcessingStatus Status                         `json:"processing_status"`
}

func (r *TabularResult) Status() Status  { return r.ProcessingStatus }
func (r *TabularResult) Message() string { return "" }

// TabularFailure is the error envelope for CSV files
type TabularFailure struct {
	ProcessingStatus Status `json:"processing_status"`
	ErrorMessage     string `json:"error_message"`
	Metadata         Empty  `json:"metadata"`
	ColumnStatistics Empty  `json:"column_statistics"`
	Data             []Row  `json:"data"`
}

// NewTabularFailure builds a CSV error envelope with empty placeholders
func NewTabularFailure(message string) *TabularFailure {
	return &TabularFailure{ProcessingStatus: StatusError, ErrorMessage: message, Data: []Row{}}
}

func (r *TabularFailure) Status() Status  { return r.ProcessingStatus }
func (r *TabularFailure) Message() string { return r.ErrorMessage }

// ImageMetadata describes a decoded raster image
type ImageMetadata struct {
	Format string `json:"format"`
	Size   [2]int `json:"size"`
	Mode   string `json:"mode"`
}

// ImageResult is the success envelope for images
type ImageResult struct {
	Metadata         ImageMetadata `json:"metadata"`
	ExtractedText    string        `json:"extracted_text"`
	ConfidenceScore  float64       `json:"confidence_score"`
	ProcessingStatus Status        `json:"processing_status"`
}

func (r *ImageResult) Status() Status  { return r.ProcessingStatus }
func (r *ImageResult) Message() string { return "" }

// ImageFailure is the error envelope for images; it carries no metadata key
type ImageFailure struct {
	ProcessingStatus Status  `json:"processing_status"`
	ErrorMessage     string  `json:"error_message"`
	ExtractedText    string  `json:"extracted_text"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// NewImageFailure builds an image error envelope
func NewImageFailure(message string) *ImageFailure {
	return &ImageFailure{ProcessingStatus: StatusError, ErrorMessage: message}
}

func (r *ImageFailure) Status() Status  { return r.ProcessingStatus }
func (r *ImageFailure) Message() string { return r.ErrorMessage }

// PageRecord is the text of one PDF page
type PageRecord struct {
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
	WordCount  int    `json:"word_count"`
}

// DocumentInfo carries the optional PDF Info dictionary entries
type DocumentInfo struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Producer string `json:"producer,omitempty"`
}

// IsZero reports whether no Info entry was found
func (d DocumentInfo) IsZero() bool {
	return d == DocumentInfo{}
}

// DocumentMetadata describes a parsed PDF
type DocumentMetadata struct {
	TotalPages   int           `json:"total_pages"`
	FileName     string        `json:"file_name"`
	FileSize     int64         `json:"file_size"`
	DocumentInfo *DocumentInfo `json:"document_info,omitempty"`
}

// DocumentResult is the success envelope for PDFs
type DocumentResult struct {
	Metadata         DocumentMetadata `json:"metadata"`
	Pages            []PageRecord     `json:"pages"`
	ProcessingStatus Status           `json:"processing_status"`
}

func (r *DocumentResult) Status() Status  { return r.ProcessingStatus }
func (r *DocumentResult) Message() string { return "" }

// DocumentFailure is the error envelope for PDFs
type DocumentFailure struct {
	ProcessingStatus Status       `json:"processing_status"`
	ErrorMessage     string       `json:"error_message"`
	Pages            []PageRecord `json:"pages"`
	Metadata         Empty        `json:"metadata"`
}

// NewDocumentFailure builds a PDF error envelope with empty placeholders
func NewDocumentFailure(message string) *DocumentFailure {
	return &DocumentFailure{ProcessingStatus: StatusError, ErrorMessage: message, Pages: []PageRecord{}}
}

func (r *DocumentFailure) Status() Status  { return r.ProcessingStatus }
func (r *DocumentFailure) Message() string { return r.ErrorMessage }
