package documents

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	TypePDF  = "application/pdf"
	TypeDOC  = "application/msword"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

const (
	FormatPDF  = "pdf"
	FormatWord = "word"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// ParseError means the document could not be read as the format its type declared.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extractor turns stored resume bytes into plain text.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (x *Extractor) Extract(contentType string, data []byte) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch mediaType {
	case TypePDF:
		text, err := extractPDFText(data)
		if err != nil {
			return "", &ParseError{Format: FormatPDF, Err: err}
		}
		return text, nil
	case TypeDOC, TypeDOCX:
		text, err := extractWordText(data)
		if err != nil {
			return "", &ParseError{Format: FormatWord, Err: err}
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// The parser panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

func extractWordText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return documentXMLText(doc.Editable().GetContent())
}
