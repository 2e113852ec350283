// Package pipeline sequences one resume parse: classify the format, extract
// text, derive entity hints, and resolve the structured record. Each request
// gets its own pass through a shared, stateless pipeline; any component
// failure aborts the request with no partial output.
package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-parser/internal/extract"
	"github.com/jonathan/cv-parser/internal/hints"
	"github.com/jonathan/cv-parser/internal/types"
)

// TextExtractor produces a text blob from a raw document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *extract.RawDocument) (*extract.ExtractedText, error)
}

// EntityHinter derives categorized hint strings from extracted text.
type EntityHinter interface {
	Hint(text string) hints.EntityHints
}

// RecordResolver resolves text plus hints into a CandidateRecord.
type RecordResolver interface {
	Resolve(ctx context.Context, apiKey, text string, h hints.EntityHints) (*types.CandidateRecord, error)
}

// Pipeline glues the extractor, hinter, and resolver together for one upload.
type Pipeline struct {
	extractor TextExtractor
	hinter    EntityHinter
	resolver  RecordResolver
	logger    zerolog.Logger
}

// New creates a Pipeline from its collaborators.
func New(extractor TextExtractor, hinter EntityHinter, resolver RecordResolver, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		hinter:    hinter,
		resolver:  resolver,
		logger:    logger,
	}
}

// Run parses one uploaded resume. The credential is checked before anything
// touches the file; the document kind comes from the filename extension.
func (p *Pipeline) Run(ctx context.Context, apiKey, filename string, data []byte) (*types.CandidateRecord, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &MissingCredentialError{}
	}

	kind, err := extract.KindFromFilename(filename)
	if err != nil {
		return nil, err
	}

	doc := extract.RawDocument{Data: data, Kind: kind}
	extracted, err := p.extractor.Extract(ctx, &doc)
	if err != nil {
		return nil, err
	}

	p.logger.Info().
		Str("filename", filename).
		Str("kind", string(kind)).
		Str("provenance", string(extracted.Provenance)).
		Int("chars", len(extracted.Text)).
		Msg("text extracted")

	h := p.hinter.Hint(extracted.Text)

	record, err := p.resolver.Resolve(ctx, apiKey, extracted.Text, h)
	if err != nil {
		return nil, err
	}

	return record, nil
}
