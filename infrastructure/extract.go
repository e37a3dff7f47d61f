package infrastructure

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// Unknown file types are passed through as raw text, truncated to keep
// resume bodies bounded.
const maxRawTextBytes = 10000

// TextExtractor turns uploaded resume files into plain text for the
// lexical scorer. Supported: TXT, PDF, DOCX; anything else falls back to
// truncated raw bytes.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText reads the file and extracts its text based on the filename
// extension.
func (e *TextExtractor) ExtractText(file io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}

	switch ext {
	case "txt":
		return string(data), nil
	case "pdf":
		return e.extractTextFromPDF(data)
	case "docx":
		return e.extractTextFromDocx(data)
	default:
		if len(data) > maxRawTextBytes {
			data = data[:maxRawTextBytes]
		}
		return string(data), nil
	}
}

// extractTextFromPDF walks the document pages with unipdf. Pages that fail
// to parse are skipped; a PDF yielding no text at all is an error.
func (e *TextExtractor) extractTextFromPDF(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("failed to get page count: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var textBuilder strings.Builder
	extractedAnyText := false

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		pageText, err := ex.ExtractText()
		if err != nil {
			continue
		}

		if pageText != "" {
			extractedAnyText = true
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n\n")
		}
	}

	if !extractedAnyText {
		return "", fmt.Errorf("no text could be extracted from any page of the PDF")
	}
	return strings.TrimSpace(textBuilder.String()), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRuns   = regexp.MustCompile(`[ \t]+`)
)

// extractTextFromDocx pulls the document body out of the WordprocessingML
// payload: paragraph boundaries become newlines, remaining tags are
// stripped.
func (e *TextExtractor) extractTextFromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	content = whitespaceRuns.ReplaceAllString(content, " ")

	return strings.TrimSpace(content), nil
}
