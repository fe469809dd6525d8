// Package ingestion turns resumes and job postings into clean plain text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-scanner/internal/fetch"
	"github.com/ledongthuc/pdf"
)

// Format identifies the decoder used for a document.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatHTML     Format = "html"
	FormatURL      Format = "url"
)

var extensionFormats = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// DecodeError reports a document that could not be turned into text.
type DecodeError struct {
	Name    string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot decode %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("cannot decode %s: %s", e.Name, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// FormatFromName picks a Format from the file extension of name.
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", &DecodeError{
		Name:    name,
		Message: fmt.Sprintf("unsupported file type %q (want .txt, .md, .pdf, .docx or .html)", ext),
	}
}

// DecodeDocument extracts plain text from data according to the extension of
// name. The result is not cleaned.
func DecodeDocument(name string, data []byte) (string, Format, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return "", "", err
	}

	var text string
	switch format {
	case FormatText, FormatMarkdown:
		if !utf8.Valid(data) {
			return "", format, &DecodeError{Name: name, Message: "file is not valid UTF-8 text"}
		}
		text = string(data)
	case FormatPDF:
		text, err = decodePDF(data)
	case FormatDOCX:
		text, err = decodeDOCX(data)
	case FormatHTML:
		text, err = fetch.ExtractMainText(string(data), fetch.DocumentSelectors())
	}
	if err != nil {
		return "", format, &DecodeError{Name: name, Message: fmt.Sprintf("invalid %s document", format), Cause: err}
	}
	return text, format, nil
}

func decodePDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// wordNS is the WordprocessingML main namespace.
const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func decodeDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer func() { _ = rc.Close() }()
		return wordText(rc)
	}
	return "", errors.New("word/document.xml not found")
}

// wordText collects the w:t runs of a WordprocessingML body, ending each
// paragraph with a newline.
func wordText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
