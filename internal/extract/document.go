// Package extract turns raw resume documents into plain text. It owns the
// strategy fallback policy: native text extraction first, OCR only when the
// native result looks like a scanned document.
package extract

import (
	"path/filepath"
	"strings"
)

// Kind is the declared format of an uploaded document.
type Kind string

// Supported document kinds.
const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// Provenance records which strategy produced the extracted text.
type Provenance string

// Provenance values for diagnostics.
const (
	ProvenanceNative Provenance = "native"
	ProvenanceOCR    Provenance = "ocr"
)

// RawDocument is an uploaded document: opaque bytes plus the declared kind.
// It lives for one request and is passed by reference into the extractor.
type RawDocument struct {
	Data []byte
	Kind Kind
}

// ExtractedText is a single text blob plus the strategy that produced it.
type ExtractedText struct {
	Text       string
	Provenance Provenance
}

// KindFromFilename classifies a document by its filename extension.
// Anything other than .pdf or .docx is an *UnsupportedFormatError.
func KindFromFilename(filename string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	default:
		return "", &UnsupportedFormatError{Filename: filename}
	}
}
