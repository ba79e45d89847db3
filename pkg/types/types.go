package types

// Status is the processing_status tag carried by every envelope
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// FileKind identifies the extractor family a file is routed to
type FileKind string

const (
	FileKindImage   FileKind = "image"
	FileKindPDF     FileKind = "pdf"
	FileKindCSV     FileKind = "csv"
	FileKindUnknown FileKind = "unknown"
)

// Envelope is the uniform result returned by every extractor
type Envelope interface {
	Status() Status
	// Message is the error message, empty on success
	Message() string
}

// Empty marshals to {} and stands in for payload objects of failed envelopes
type Empty struct{}

// FileOutcome is the dispatcher's outer envelope for a single file
type FileOutcome struct {
	ProcessingStatus Status   `json:"processing_status"`
	ErrorMessage     string   `json:"error_message,omitempty"`
	OutputPath       string   `json:"output_path,omitempty"`
	Results          Envelope `json:"results,omitempty"`
}

// Succeeded reports whether the outcome carries a success status
func (o *FileOutcome) Succeeded() bool {
	return o.ProcessingStatus == StatusSuccess
}

// NewFileSuccess builds the outer envelope for a written result
func NewFileSuccess(outputPath string, results Envelope) *FileOutcome {
	return &FileOutcome{
		ProcessingStatus: StatusSuccess,
		OutputPath:       outputPath,
		Results:          results,
	}
}

// NewFileFailure builds the outer envelope for a failed or unsupported file
func NewFileFailure(message string) *FileOutcome {
	return &FileOutcome{
		ProcessingStatus: StatusError,
		ErrorMessage:     message,
	}
}

// BatchOutcome aggregates the outcomes of a batch run
type BatchOutcome struct {
	BatchResults *OrderedMap[*FileOutcome] `json:"batch_results"`
	TotalFiles   int                       `json:"total_files"`
	Successful   int                       `json:"successful"`
	Failed       int                       `json:"failed"`
}

// NewBatchOutcome creates an empty batch outcome
func NewBatchOutcome() *BatchOutcome {
	return &BatchOutcome{BatchResults: NewOrderedMap[*FileOutcome]()}
}

// Record adds the outcome of one invocation. A repeated path keeps its first
// position and takes the latest outcome; counters track every invocation.
func (b *BatchOutcome) Record(path string, outcome *FileOutcome) {
	b.BatchResults.Set(path, outcome)
	b.TotalFiles++
	if outcome.Succeeded() {
		b.Successful++
	} else {
		b.Failed++
	}
}
