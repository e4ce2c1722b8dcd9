package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leaperfx/lfx/internal/tokenizer"
	"github.com/leaperfx/lfx/internal/utils"
)

const (
	// DefaultWorkerCount bounds concurrent document translations.
	DefaultWorkerCount = 4

	htmlExtension = ".html"
	htmExtension  = ".htm"
	pdfExtension  = ".pdf"

	successMessageFormat    = "Successfully translated %s to %s\n"
	failureMessageFormat    = "Failed to translate %s. Error: %v\n"
	warningTokenCountFormat = "Warning: failed to count tokens for %s: %v\n"
)

// Options configures a batch translation run.
type Options struct {
	// Translator produces translated text for each document.
	Translator Translator
	// Language selects the suffix appended to output file names.
	Language string
	// Workers bounds the number of documents translated concurrently.
	Workers int
	// FontPath optionally names a TTF file embedded into PDF output.
	FontPath string
	// Counter, when set, accumulates source token counts for the closing
	// summary line.
	Counter tokenizer.Counter
	// Stdout receives the per-file result lines and the summary.
	Stdout io.Writer
}

type fileResult struct {
	inputPath   string
	outputPath  string
	sourceBytes int64
	tokens      int
	err         error
}

// Run translates inputPaths concurrently and reports one result line per file
// on stdout, in input order. A failed file is reported and skipped; the run
// itself fails only when its setup is unusable.
func Run(ctx context.Context, inputPaths []string, options Options) error {
	if len(inputPaths) == 0 {
		return errors.New("no input files provided")
	}
	if options.Translator == nil {
		return errors.New("translator is not configured")
	}
	workerCount := options.Workers
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	language := options.Language
	if language == "" {
		language = DefaultLanguage
	}
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	results := make([]fileResult, len(inputPaths))
	workerGroup, groupContext := errgroup.WithContext(ctx)
	workerGroup.SetLimit(workerCount)
	for inputIndex, inputPath := range inputPaths {
		workerGroup.Go(func() error {
			results[inputIndex] = processFile(groupContext, inputPath, language, options)
			return nil
		})
	}
	if waitError := workerGroup.Wait(); waitError != nil {
		return waitError
	}

	for _, result := range results {
		if result.err != nil {
			fmt.Fprintf(stdout, failureMessageFormat, result.inputPath, result.err)
			continue
		}
		fmt.Fprintf(stdout, successMessageFormat, result.inputPath, result.outputPath)
	}
	if options.Counter != nil {
		fmt.Fprintln(stdout, formatBatchSummary(results, options.Counter.Name()))
	}
	return nil
}

// processFile translates a single document and, when token accounting is
// enabled, measures its source text afterwards.
func processFile(ctx context.Context, inputPath string, language string, options Options) fileResult {
	result := fileResult{inputPath: inputPath, outputPath: OutputPath(inputPath, language)}
	extension := strings.ToLower(filepath.Ext(inputPath))
	switch extension {
	case htmlExtension, htmExtension:
		result.err = processHTMLFile(ctx, options.Translator, inputPath, result.outputPath)
	case pdfExtension:
		result.err = processPDFFile(ctx, options.Translator, inputPath, result.outputPath, options.FontPath)
	default:
		result.err = fmt.Errorf("unsupported file type %q", extension)
	}
	if result.err != nil || options.Counter == nil {
		return result
	}
	sourceBytes, measurement, measureError := measureSourceDocument(options.Counter, inputPath, extension)
	result.sourceBytes = sourceBytes
	if measureError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, inputPath, measureError)
		return result
	}
	if measurement.Textual {
		result.tokens = measurement.Tokens
	}
	return result
}

// measureSourceDocument reports the document's size on disk and the token
// count of its text. PDF bytes are opaque to the tokenizer, so their
// extracted text is counted instead.
func measureSourceDocument(counter tokenizer.Counter, inputPath string, extension string) (int64, tokenizer.Measurement, error) {
	fileInfo, statError := os.Stat(inputPath)
	if statError != nil {
		return 0, tokenizer.Measurement{}, statError
	}
	if extension == pdfExtension {
		sourceText, extractError := extractPDFText(inputPath)
		if extractError != nil {
			return fileInfo.Size(), tokenizer.Measurement{}, extractError
		}
		measurement, measureError := tokenizer.MeasureBytes(counter, []byte(sourceText))
		return fileInfo.Size(), measurement, measureError
	}
	measurement, measureError := tokenizer.MeasureFile(counter, inputPath)
	return fileInfo.Size(), measurement, measureError
}

// formatBatchSummary renders the closing summary over the files that
// translated successfully.
func formatBatchSummary(results []fileResult, modelName string) string {
	fileCount := 0
	var totalBytes int64
	totalTokens := 0
	for _, result := range results {
		if result.err != nil {
			continue
		}
		fileCount++
		totalBytes += result.sourceBytes
		totalTokens += result.tokens
	}
	label := "files"
	if fileCount == 1 {
		label = "file"
	}
	tokenSuffix := ""
	if totalTokens > 0 {
		tokenSuffix = fmt.Sprintf(", %d tokens", totalTokens)
	}
	modelSuffix := ""
	if modelName != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", modelName)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", fileCount, label, utils.FormatFileSize(totalBytes), tokenSuffix, modelSuffix)
}
