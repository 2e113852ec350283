package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-parser/internal/pipeline"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// handleParseCV accepts one multipart resume upload plus a per-request
// credential and returns the parsed CandidateRecord as JSON.
//
// The credential is resolved before the file part is touched, so a missing
// key fails before any file processing.
func (s *Server) handleParseCV(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := s.logger.With().Str("request_id", requestID).Logger()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	apiKey := r.Header.Get("X-API-Key")
	if apiKey == "" {
		apiKey = r.FormValue("api_key")
	}
	if apiKey == "" {
		err := &pipeline.MissingCredentialError{}
		log.Warn().Msg("request rejected: no credential")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "a file upload named 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read uploaded file: "+err.Error())
		return
	}

	record, err := s.runner.Run(r.Context(), apiKey, header.Filename, data)
	if err != nil {
		log.Error().Str("filename", header.Filename).Err(err).Msg("parse failed")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	log.Info().Str("filename", header.Filename).Msg("parse succeeded")
	s.jsonResponse(w, http.StatusOK, record)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, detail string) {
	s.jsonResponse(w, status, ErrorResponse{Detail: detail})
}
