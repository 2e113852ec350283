package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/cv-parser/internal/extract"
	"github.com/jonathan/cv-parser/internal/pipeline"
	"github.com/jonathan/cv-parser/internal/resolve"
)

// HTTPStatus maps pipeline errors onto HTTP status codes. Document-quality
// and input problems are client errors; a resolver that never converged is a
// dependency failure.
func HTTPStatus(err error) int {
	var (
		missingCredential *pipeline.MissingCredentialError
		unsupportedFormat *extract.UnsupportedFormatError
		extraction        *extract.ExtractionError
		resolution        *resolve.ResolutionError
	)

	switch {
	case errors.As(err, &missingCredential):
		return http.StatusUnauthorized
	case errors.As(err, &unsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extraction):
		return http.StatusBadRequest
	case errors.As(err, &resolution):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
