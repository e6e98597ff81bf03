package httpadapter

import (
	"net/http"

	"github.com/clauseguard/backend/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrUnsupportedFormat),
		domain.IsKind(err, domain.ErrExtractionFailed),
		domain.IsKind(err, domain.ErrEmptyDocument),
		domain.IsKind(err, domain.ErrInvalidInput),
		domain.IsKind(err, domain.ErrUserExists):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrBackendUnavailable),
		domain.IsKind(err, domain.ErrBackendTimeout),
		domain.IsKind(err, domain.ErrBackendTransport):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage converts a pipeline error into the message returned to the
// UI. The typed taxonomy replaces fragile status-substring sniffing.
func clientMessage(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrUnsupportedFormat):
		return "Unsupported file format. Please upload a PDF, DOC, DOCX or plain-text file."
	case domain.IsKind(err, domain.ErrExtractionFailed):
		return "The file could not be read. It may be corrupted or password-protected."
	case domain.IsKind(err, domain.ErrEmptyDocument):
		return "No readable text was found in the document."
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "The request is missing required input."
	case domain.IsKind(err, domain.ErrUnauthorized):
		return "Invalid email or password."
	case domain.IsKind(err, domain.ErrUserExists):
		return "An account with this email already exists."
	case domain.IsKind(err, domain.ErrBackendTimeout):
		return "The analysis service took too long to respond. Please try again."
	case domain.IsKind(err, domain.ErrBackendUnavailable), domain.IsKind(err, domain.ErrBackendTransport):
		return "The analysis service is temporarily unavailable. Please try again."
	default:
		return "Something went wrong while processing your request."
	}
}
