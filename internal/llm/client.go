// Package llm provides the client abstraction over the generative model used
// for structured resume extraction.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over the generative capability. The resolver only
// needs schema-constrained JSON generation; everything else about the provider
// stays behind this interface so tests can substitute a fake.
type Client interface {
	// GenerateCandidateJSON generates a CandidateRecord-shaped JSON document
	// for the given prompt. The output is constrained to the record schema at
	// the provider level, but callers must still validate it.
	GenerateCandidateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Factory builds a Client for a single request's credential. Credentials are
// supplied per request and must not be cached across requests, so the resolver
// constructs and closes a client per resolution.
type Factory func(ctx context.Context, apiKey string) (Client, error)

// NewGeminiFactory returns a Factory producing Gemini clients for the given model.
func NewGeminiFactory(model string) Factory {
	return func(ctx context.Context, apiKey string) (Client, error) {
		return NewGeminiClient(ctx, apiKey, model)
	}
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client bound to one API key.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateCandidateJSON generates CandidateRecord JSON for the given prompt.
func (c *GeminiClient) GenerateCandidateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = candidateRecordSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	// The JSON response mode should not produce markdown fences, but the model
	// occasionally wraps output anyway.
	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// candidateRecordSchema declares the CandidateRecord shape as a provider-level
// response schema: field names, types, nesting, and nullability.
func candidateRecordSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {Type: genai.TypeString, Description: "Full name of the candidate"},
			"contact": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"email":    {Type: genai.TypeString, Nullable: true},
					"phone":    {Type: genai.TypeString, Nullable: true},
					"linkedin": {Type: genai.TypeString, Nullable: true},
					"github":   {Type: genai.TypeString, Nullable: true},
				},
				Required: []string{"email", "phone", "linkedin", "github"},
			},
			"education": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"institution":     {Type: genai.TypeString},
						"degree":          {Type: genai.TypeString},
						"graduation_year": {Type: genai.TypeString},
					},
					Required: []string{"institution", "degree", "graduation_year"},
				},
			},
			"experience": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"company":     {Type: genai.TypeString},
						"role":        {Type: genai.TypeString},
						"start_date":  {Type: genai.TypeString},
						"end_date":    {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
					Required: []string{"company", "role", "start_date", "end_date", "description"},
				},
			},
			"skills": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"name", "contact", "education", "experience", "skills"},
	}
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
