// Package resolve turns extracted resume text plus entity hints into a
// validated CandidateRecord. The generative capability is non-deterministic
// and occasionally malformed, so every response is validated against the
// record schema and rejected responses are retried up to a fixed bound.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-parser/internal/hints"
	"github.com/jonathan/cv-parser/internal/llm"
	"github.com/jonathan/cv-parser/internal/schemas"
	"github.com/jonathan/cv-parser/internal/types"
)

// maxAttempts bounds the retry loop. Bounded retry converts "usually
// conforms" into "conforms or explicitly fails".
const maxAttempts = 3

// DefaultTimeout bounds a single generation attempt.
const DefaultTimeout = 60 * time.Second

// Resolver resolves resume text into CandidateRecords. A client is built per
// resolution from the request's own credential and closed afterwards.
type Resolver struct {
	newClient llm.Factory
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewResolver creates a Resolver. A non-positive timeout falls back to
// DefaultTimeout.
func NewResolver(factory llm.Factory, timeout time.Duration, logger zerolog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		newClient: factory,
		timeout:   timeout,
		logger:    logger,
	}
}

// Resolve invokes the generative capability and guarantees either a
// schema-conforming CandidateRecord or a *ResolutionError carrying each
// attempt's failure. Attempts are independent: nothing carries over between
// them besides the original prompt.
func (r *Resolver) Resolve(ctx context.Context, apiKey, text string, h hints.EntityHints) (*types.CandidateRecord, error) {
	client, err := r.newClient(ctx, apiKey)
	if err != nil {
		return nil, &ResolutionError{Attempts: []AttemptFailure{
			{Attempt: 1, Cause: fmt.Errorf("failed to create client: %w", err)},
		}}
	}
	defer func() { _ = client.Close() }()

	prompt := BuildPrompt(text, h)

	var failures []AttemptFailure
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		record, err := r.attempt(ctx, client, prompt)
		if err == nil {
			return record, nil
		}

		r.logger.Warn().Int("attempt", attempt).Err(err).Msg("resolution attempt rejected")
		failures = append(failures, AttemptFailure{Attempt: attempt, Cause: err})
	}

	return nil, &ResolutionError{Attempts: failures}
}

// attempt runs one bounded generation and validates the response.
func (r *Resolver) attempt(ctx context.Context, client llm.Client, prompt string) (*types.CandidateRecord, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := client.GenerateCandidateJSON(attemptCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	if err := schemas.ValidateCandidateRecord(raw); err != nil {
		return nil, err
	}

	var record types.CandidateRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("response did not decode: %w", err)
	}

	record.Normalize()
	return &record, nil
}
