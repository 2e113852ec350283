package extract

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// sparseThreshold is the minimum trimmed native-text length below which a PDF
// is treated as image-based and handed to OCR. Far below any real resume's
// native-text yield, so it only fires for scanned documents.
const sparseThreshold = 50

// pdfStrategy is one way of turning PDF bytes into text.
type pdfStrategy func(ctx context.Context, data []byte) (string, error)

// Extractor converts raw documents into text. Strategies are function fields
// so tests can exercise the fallback policy without real PDF rendering.
type Extractor struct {
	logger    zerolog.Logger
	nativePDF pdfStrategy
	ocrPDF    pdfStrategy
	docx      func(data []byte) (string, error)
}

// New creates an Extractor wired to the real extraction strategies.
func New(logger zerolog.Logger) *Extractor {
	e := &Extractor{logger: logger}
	e.nativePDF = func(ctx context.Context, data []byte) (string, error) {
		return extractNativePDF(ctx, data, e.logger)
	}
	e.ocrPDF = extractOCRPDF
	e.docx = parseDOCX
	return e
}

// Extract produces the document's text blob, choosing the strategy by kind
// and falling back from native PDF extraction to OCR when the text layer is
// sparse. Fails with *ExtractionError when no strategy yields usable text.
func (e *Extractor) Extract(ctx context.Context, doc *RawDocument) (*ExtractedText, error) {
	var result *ExtractedText

	switch doc.Kind {
	case KindDOCX:
		text, err := e.docx(doc.Data)
		if err != nil {
			// No fallback exists for DOCX; a structural parse failure is fatal.
			return nil, &ExtractionError{Kind: KindDOCX, Message: "document is not readable", Cause: err}
		}
		result = &ExtractedText{Text: text, Provenance: ProvenanceNative}

	case KindPDF:
		extracted, err := e.extractPDF(ctx, doc.Data)
		if err != nil {
			return nil, err
		}
		result = extracted

	default:
		return nil, &UnsupportedFormatError{Filename: string(doc.Kind)}
	}

	if strings.TrimSpace(result.Text) == "" {
		return nil, &ExtractionError{Kind: doc.Kind, Message: "document yielded no text"}
	}

	return result, nil
}

// extractPDF applies the native strategy first and decides whether its output
// is usable. A sparse text layer means the document is image-based; the
// native result is discarded entirely and OCR produces the final text.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (*ExtractedText, error) {
	native, err := e.nativePDF(ctx, data)
	if err != nil {
		e.logger.Warn().Err(err).Msg("native PDF extraction failed, trying OCR")
		native = ""
	}

	if len(strings.TrimSpace(native)) >= sparseThreshold {
		return &ExtractedText{Text: native, Provenance: ProvenanceNative}, nil
	}

	e.logger.Info().
		Int("native_chars", len(strings.TrimSpace(native))).
		Msg("native text layer is sparse, falling back to OCR")

	ocr, err := e.ocrPDF(ctx, data)
	if err != nil {
		return nil, &ExtractionError{Kind: KindPDF, Message: "OCR fallback failed", Cause: err}
	}

	return &ExtractedText{Text: ocr, Provenance: ProvenanceOCR}, nil
}
