// Package ingestion turns uploaded documents (PDF, DOCX, plain text, HTML job
// descriptions) into clean text for skill extraction.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadBytes caps a single document.
const MaxUploadBytes = 16 << 20

// Format is a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// UploadFormats are accepted on the HTTP surface.
var UploadFormats = []Format{FormatPDF, FormatDOCX}

// AllFormats are accepted by the CLI.
var AllFormats = []Format{FormatPDF, FormatDOCX, FormatText}

// FormatFromName returns the format named by fileName's extension and whether
// it is one of allowed (UploadFormats when empty).
func FormatFromName(fileName string, allowed ...Format) (Format, bool) {
	if len(allowed) == 0 {
		allowed = UploadFormats
	}
	ext := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), "."))
	return ext, containsFormat(allowed, ext)
}

// DetectFormat checks that the file extension is allowed and agrees with the
// sniffed content type.
func DetectFormat(fileName string, data []byte, allowed ...Format) (Format, error) {
	if len(allowed) == 0 {
		allowed = UploadFormats
	}

	ext, ok := FormatFromName(fileName, allowed...)
	if !ok {
		return "", &InputFormatError{
			FileName: fileName,
			Reason:   fmt.Sprintf("file type %q not allowed (accepted: %s)", ext, joinFormats(allowed)),
		}
	}
	if len(data) == 0 {
		return "", &InputFormatError{FileName: fileName, Reason: "file is empty"}
	}

	sniffed := http.DetectContentType(data)
	if !sniffMatches(ext, sniffed) {
		return "", &InputFormatError{
			FileName: fileName,
			Reason:   fmt.Sprintf("content type %q does not match extension .%s", sniffed, ext),
		}
	}
	return ext, nil
}

// ExtractText returns the cleaned text of a document in the given format.
// Unreadable documents and documents without text yield *ExtractionError.
func ExtractText(source string, format Format, data []byte) (string, error) {
	var (
		raw string
		err error
	)
	switch format {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOCX:
		raw, err = extractDOCX(data)
	case FormatText:
		raw = string(bytes.ToValidUTF8(data, []byte("�")))
	default:
		return "", &InputFormatError{FileName: source, Reason: fmt.Sprintf("unknown format %q", format)}
	}
	if err != nil {
		return "", &ExtractionError{Source: source, Reason: fmt.Sprintf("unreadable %s", format), Cause: err}
	}

	text := CleanText(raw)
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Source: source, Reason: "document contains no extractable text"}
	}
	return text, nil
}

// ExtractUpload gates and extracts one uploaded document.
func ExtractUpload(fileName string, data []byte, allowed ...Format) (string, error) {
	format, err := DetectFormat(fileName, data, allowed...)
	if err != nil {
		return "", err
	}
	return ExtractText(fileName, format, data)
}

// ReadUpload reads at most MaxUploadBytes from r. Larger inputs fail with *InputFormatError.
func ReadUpload(fileName string, r io.Reader) ([]byte, error) {
	return ReadUploadLimit(fileName, r, MaxUploadBytes)
}

// ReadUploadLimit is ReadUpload with a caller-chosen cap.
func ReadUploadLimit(fileName string, r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if int64(len(data)) > limit {
		return nil, &InputFormatError{FileName: fileName, Reason: fmt.Sprintf("file exceeds %d bytes", limit)}
	}
	return data, nil
}

// ReadFile reads and extracts a local document, accepting PDF, DOCX and plain text.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := ReadUpload(path, f)
	if err != nil {
		return "", err
	}
	return ExtractUpload(filepath.Base(path), data, AllFormats...)
}

func sniffMatches(format Format, sniffed string) bool {
	switch format {
	case FormatPDF:
		return strings.HasPrefix(sniffed, "application/pdf")
	case FormatDOCX:
		// DOCX is an OOXML zip container.
		return strings.HasPrefix(sniffed, "application/zip")
	case FormatText:
		return strings.HasPrefix(sniffed, "text/plain")
	}
	return false
}

func containsFormat(formats []Format, f Format) bool {
	for _, x := range formats {
		if x == f {
			return true
		}
	}
	return false
}

func joinFormats(formats []Format) string {
	parts := make([]string, len(formats))
	for i, f := range formats {
		parts[i] = "." + string(f)
	}
	return strings.Join(parts, ", ")
}
