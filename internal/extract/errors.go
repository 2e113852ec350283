package extract

import "fmt"

// UnsupportedFormatError indicates the uploaded file has an unrecognized
// extension. This is a client error; no extraction is attempted.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (only PDF and DOCX are supported)", e.Filename)
}

// ExtractionError indicates no strategy produced usable text from the
// document. It reflects document quality, not a server fault.
type ExtractionError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s: %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
