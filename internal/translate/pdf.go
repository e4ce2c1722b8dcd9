package translate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
)

const (
	unicodeFontFamilyName  = "Unicode"
	fallbackFontFamilyName = "Arial"
	pdfFontSizePoints      = 12
	pdfLineHeightMM        = 10

	warningFontLoadFormat = "Warning: failed to load font %s: %v; non-Latin text may not render with %s\n"
)

// extractPDFText concatenates the plain text of every page in the document at
// inputPath, one page per line. Pages without content are skipped.
func extractPDFText(inputPath string) (string, error) {
	pdfFile, pdfReader, openError := pdf.Open(inputPath)
	if openError != nil {
		return "", fmt.Errorf("open %s: %w", inputPath, openError)
	}
	defer pdfFile.Close()

	var textBuilder strings.Builder
	for pageNumber := 1; pageNumber <= pdfReader.NumPage(); pageNumber++ {
		page := pdfReader.Page(pageNumber)
		if page.V.IsNull() {
			continue
		}
		pageText, pageError := page.GetPlainText(nil)
		if pageError != nil {
			return "", fmt.Errorf("extract text from %s page %d: %w", inputPath, pageNumber, pageError)
		}
		if pageText == "" {
			continue
		}
		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

// processPDFFile extracts the text of the PDF at inputPath, translates it as
// one document, and writes a fresh PDF holding the translation to outputPath.
func processPDFFile(ctx context.Context, translator Translator, inputPath string, outputPath string, fontPath string) error {
	sourceText, extractError := extractPDFText(inputPath)
	if extractError != nil {
		return extractError
	}
	translatedText, translateError := translateText(ctx, translator, sourceText)
	if translateError != nil {
		return translateError
	}
	return writePDFDocument(outputPath, translatedText, fontPath)
}

// writePDFDocument emits text into a single-column A4 document at outputPath.
// When fontPath names a TTF file it is embedded as a UTF-8 font; a font that
// fails to load falls back to the built-in Arial with a warning.
func writePDFDocument(outputPath string, text string, fontPath string) error {
	document := newPDFDocument(fontPath)
	if fontPath != "" && document.Error() != nil {
		fmt.Fprintf(os.Stderr, warningFontLoadFormat, fontPath, document.Error(), fallbackFontFamilyName)
		document = newPDFDocument("")
	}
	document.MultiCell(0, pdfLineHeightMM, text, "", "", false)
	return document.OutputFileAndClose(outputPath)
}

func newPDFDocument(fontPath string) *fpdf.Fpdf {
	document := fpdf.New("P", "mm", "A4", "")
	document.AddPage()
	if fontPath != "" {
		document.AddUTF8Font(unicodeFontFamilyName, "", fontPath)
		document.SetFont(unicodeFontFamilyName, "", pdfFontSizePoints)
		return document
	}
	document.SetFont(fallbackFontFamilyName, "", pdfFontSizePoints)
	return document
}
