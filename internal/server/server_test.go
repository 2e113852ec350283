package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-parser/internal/extract"
	"github.com/jonathan/cv-parser/internal/hints"
	"github.com/jonathan/cv-parser/internal/pipeline"
	"github.com/jonathan/cv-parser/internal/resolve"
	"github.com/jonathan/cv-parser/internal/types"
)

// fakeHinter returns fixed hints without a model.
type fakeHinter struct{ out hints.EntityHints }

func (f *fakeHinter) Hint(_ string) hints.EntityHints { return f.out }

// fakeResolver captures the text it was handed and returns a canned record.
type fakeResolver struct {
	gotText string
	record  *types.CandidateRecord
	err     error
	calls   int
}

func (f *fakeResolver) Resolve(_ context.Context, _, text string, _ hints.EntityHints) (*types.CandidateRecord, error) {
	f.calls++
	f.gotText = text
	return f.record, f.err
}

// newTestServer wires a real extractor and pipeline around fake model
// dependencies so handler tests exercise the full request path.
func newTestServer(t *testing.T, resolver *fakeResolver) *Server {
	t.Helper()
	extractor := extract.New(zerolog.Nop())
	pipe := pipeline.New(extractor, &fakeHinter{out: hints.Empty()}, resolver, zerolog.Nop())
	return New(Config{Port: 0, StaticDir: t.TempDir(), MaxUploadBytes: 10 << 20}, pipe, zerolog.Nop())
}

// multipartUpload builds a multipart body with one file part and optional form fields.
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

// buildDOCX assembles a minimal DOCX container with the given paragraph lines.
func buildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"word/document.xml": doc.String(),
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func doParseCV(t *testing.T, srv *Server, filename string, content []byte, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, filename, content, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/parse-cv", body)
	req.Header.Set("Content-Type", contentType)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestParseCV_MissingCredential_Unauthorized(t *testing.T) {
	resolver := &fakeResolver{}
	srv := newTestServer(t, resolver)

	rec := doParseCV(t, srv, "resume.docx", buildDOCX(t, []string{"Jane Doe"}), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "API key")
	assert.Zero(t, resolver.calls, "no file processing may happen without a credential")
}

func TestParseCV_CredentialFromFormField(t *testing.T) {
	record := &types.CandidateRecord{Name: "Jane Doe"}
	record.Normalize()
	srv := newTestServer(t, &fakeResolver{record: record})

	body, contentType := multipartUpload(t, "resume.docx", buildDOCX(t, []string{"Jane Doe"}), map[string]string{"api_key": "form-key"})
	req := httptest.NewRequest(http.MethodPost, "/api/parse-cv", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParseCV_UnsupportedExtension(t *testing.T) {
	resolver := &fakeResolver{}
	srv := newTestServer(t, resolver)

	rec := doParseCV(t, srv, "resume.txt", []byte("plain text resume"), "key")

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Zero(t, resolver.calls)
}

func TestParseCV_MissingFilePart(t *testing.T) {
	srv := newTestServer(t, &fakeResolver{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/parse-cv", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", "key")

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseCV_DOCXEndToEnd(t *testing.T) {
	email := "jane@example.com"
	record := &types.CandidateRecord{
		Name:    "Jane Doe",
		Contact: types.ContactInfo{Email: &email},
		Experience: []types.Experience{{
			Company: "Acme Corp", Role: "Software Engineer",
			StartDate: "2019", EndDate: types.PresentToken, Description: "",
		}},
		Skills: []string{"Python", "Go"},
	}
	record.Normalize()
	resolver := &fakeResolver{record: record}
	srv := newTestServer(t, resolver)

	docx := buildDOCX(t, []string{"Jane Doe", "Software Engineer at Acme Corp", "Skills: Python, Go"})
	rec := doParseCV(t, srv, "resume.docx", docx, "key")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The extractor must hand the resolver the paragraphs in order.
	assert.Equal(t, "Jane Doe\nSoftware Engineer at Acme Corp\nSkills: Python, Go", resolver.gotText)

	var got types.CandidateRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Jane Doe", got.Name)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, "Acme Corp", got.Experience[0].Company)
	assert.Contains(t, got.Skills, "Python")
	assert.Contains(t, got.Skills, "Go")

	// Every top-level key must be present in the raw body even when empty.
	for _, key := range []string{`"name"`, `"contact"`, `"education"`, `"experience"`, `"skills"`} {
		assert.Contains(t, rec.Body.String(), key)
	}
}

func TestParseCV_EmptyDocument_BadRequest(t *testing.T) {
	resolver := &fakeResolver{}
	srv := newTestServer(t, resolver)

	rec := doParseCV(t, srv, "resume.docx", buildDOCX(t, []string{"", "   "}), "key")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, resolver.calls, "empty documents must never reach the resolver")
}

func TestParseCV_ResolutionFailure_BadGateway(t *testing.T) {
	resErr := &resolve.ResolutionError{Attempts: []resolve.AttemptFailure{
		{Attempt: 1, Cause: errors.New("model unavailable")},
	}}
	srv := newTestServer(t, &fakeResolver{err: resErr})

	rec := doParseCV(t, srv, "resume.docx", buildDOCX(t, []string{"Jane Doe resume body"}), "key")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Detail)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
