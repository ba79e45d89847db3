package constants

// Application constants
const (
	AppName = "doc-to-json"
	// AppVersion is injected through ldflags in main.go
)

// File processing constants
const (
	// Default file permissions
	DefaultFilePermission = 0644
	DefaultDirPermission  = 0755

	// DefaultOutputDir is where processed JSON files land
	DefaultOutputDir = "processed_files"

	// OutputSuffix is appended to the input base name (without extension)
	OutputSuffix = "_processed.json"

	// JSONIndent is the per-level indentation of written output
	JSONIndent = "  "
)

// Large files are still processed; they only trigger a warning
const WarnFileSizeLimit = 100 * 1024 * 1024

// Extension sets, lower case with the leading dot
var (
	ImageExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".tiff": true, ".bmp": true,
	}

	PDFExtensions = map[string]bool{".pdf": true}

	CSVExtensions = map[string]bool{".csv": true}
)

// OCR settings
const (
	DefaultTesseractBinary   = "tesseract"
	DefaultTesseractLanguage = "eng"

	// NoConfidence marks tokens for which the OCR engine reports no confidence
	NoConfidence = -1.0

	// ConfidenceDecimals is the rounding applied to the aggregate confidence
	ConfidenceDecimals = 2
)

// CSV settings
const (
	DefaultCSVDelimiter = ","
	DefaultCSVEncoding  = "utf-8"
)

// CSVNullTokens are the field values read as missing.
var CSVNullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Text layout parameters for PDF page reconstruction
const (
	LayoutLineOverlap = 0.5
	LayoutCharMargin  = 2.0
	LayoutLineMargin  = 0.5
	LayoutWordMargin  = 0.1
	LayoutAllTexts    = true
)
