package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nodewee/doc-to-json/pkg/config"
	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/core"
	"github.com/nodewee/doc-to-json/pkg/logger"
	"github.com/nodewee/doc-to-json/pkg/output"
	"github.com/nodewee/doc-to-json/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	outputDir     string
	tesseractPath string
	tesseractLang string
	csvDelimiter  string
	csvEncoding   string
	logLevel      string
	verbose       bool
	showVersion   bool
)

// ErrFilesFailed is returned when at least one input could not be processed
var ErrFilesFailed = errors.New("one or more files failed to process")

// AppHandler encapsulates application main processing logic
type AppHandler struct {
	config    *config.Config
	logger    *logger.LeveledLogger
	processor *core.DefaultFileProcessor
	out       io.Writer
}

// NewAppHandler creates an application handler printing results to out
func NewAppHandler(out io.Writer) *AppHandler {
	return &AppHandler{out: out}
}

// Run processes inputFiles. A single file prints its outcome; several files
// print the batch summary.
func (h *AppHandler) Run(ctx context.Context, inputFiles []string) error {
	if err := h.initialize(); err != nil {
		return err
	}

	if len(inputFiles) == 1 {
		outcome, err := h.processor.ProcessFile(ctx, inputFiles[0])
		if printErr := h.print(outcome); printErr != nil {
			return printErr
		}
		if err != nil {
			return err
		}
		if !outcome.Succeeded() {
			return ErrFilesFailed
		}
		return nil
	}

	batch, err := h.processor.BatchProcess(ctx, inputFiles)
	if printErr := h.print(batch); printErr != nil {
		return printErr
	}
	if err != nil {
		return err
	}
	if batch.Failed > 0 {
		return ErrFilesFailed
	}
	return nil
}

// initialize loads configuration and builds the processor
func (h *AppHandler) initialize() error {
	h.config = config.LoadConfigWithEnvOverrides()
	h.applyCommandLineOverrides()

	if err := h.config.Validate(); err != nil {
		return utils.WrapError(err, utils.ErrorTypeValidation, "configuration validation failed")
	}

	h.logger = logger.NewLogger(h.config.LogLevel, h.config.EnableVerbose)
	h.logger.Debug("Loaded %s", h.config)
	processor, err := core.NewFileProcessor(h.config, h.logger)
	if err != nil {
		return err
	}
	h.processor = processor
	h.logger.Debug("Writing results to %s", processor.OutputDir())
	return nil
}

// applyCommandLineOverrides applies command line parameter overrides
func (h *AppHandler) applyCommandLineOverrides() {
	if outputDir != "" {
		h.config.OutputDir = outputDir
	}
	if tesseractPath != "" {
		h.config.TesseractPath = tesseractPath
	}
	if tesseractLang != "" {
		h.config.TesseractLanguage = tesseractLang
	}
	if csvDelimiter != "" {
		h.config.CSVDelimiter = csvDelimiter
	}
	if csvEncoding != "" {
		h.config.CSVEncoding = csvEncoding
	}
	if logLevel != "" {
		h.config.LogLevel = logLevel
	}
	if verbose {
		h.config.EnableVerbose = true
	}
}

func (h *AppHandler) print(v any) error {
	data, err := output.Encode(v)
	if err != nil {
		return utils.NewWriteError("failed to render result", err)
	}
	_, err = h.out.Write(data)
	return err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "doc-to-json [files...]",
	Short: "Normalize CSV, image and PDF files into JSON documents",
	Long: `Normalize heterogeneous documents into uniform JSON result envelopes.

Supported inputs:
- CSV: rows plus per-column statistics (dtype, nulls, unique values, min/max/mean/median)
- Images (PNG, JPEG, TIFF, BMP): OCR text through tesseract with an averaged confidence score
- PDF: layout-aware text for every page with word counts

Each successfully processed file is written to {output_dir}/{name}_processed.json.
One input prints its outcome; several inputs print a batch summary.

Examples:
  doc-to-json report.pdf                              # Process a single PDF
  doc-to-json data.csv scan.png report.pdf            # Process a batch
  doc-to-json data.csv --delimiter ';' --encoding latin1
  doc-to-json scan.png --tesseract /usr/bin/tesseract --lang deu
  doc-to-json *.pdf -o ./out -v                       # Custom output directory with debug logs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constants.AppName, version)
			return nil
		}

		if len(args) == 0 {
			return cmd.Help()
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		handler := NewAppHandler(cmd.OutOrStdout())
		return handler.Run(ctx, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func reportError(err error) {
	if errors.Is(err, ErrFilesFailed) {
		return
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(os.Stderr, "Error (%s): %s\n", appErr.Type, utils.Detail(err))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"Directory receiving {name}_processed.json files (default: processed_files)")
	rootCmd.Flags().StringVar(&tesseractPath, "tesseract", "",
		"Path to the tesseract binary (default: detected)")
	rootCmd.Flags().StringVar(&tesseractLang, "lang", "",
		"Tesseract language code (default: eng)")
	rootCmd.Flags().StringVar(&csvDelimiter, "delimiter", "",
		"CSV field delimiter (default: ,)")
	rootCmd.Flags().StringVar(&csvEncoding, "encoding", "",
		"CSV text encoding label (default: utf-8)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false,
		"Show version information")
}
