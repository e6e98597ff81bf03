package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/clauseguard/backend/internal/core/domain"
)

const (
	mediaTypePDF  = "application/pdf"
	mediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mediaTypeDOC  = "application/msword"
)

// Extractor converts uploaded binaries into plain text. It is stateless; one
// instance serves all requests.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resolved := resolveMediaType(data, mediaType)

	switch {
	case resolved == mediaTypePDF:
		return extractPDF(data)
	case resolved == mediaTypeDOCX:
		return extractDOCX(data)
	case resolved == mediaTypeDOC:
		return extractDOC(data)
	case strings.HasPrefix(resolved, "text/"):
		return extractPlainText(data)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text",
			fmt.Errorf("media type %q", resolved))
	}
}

// resolveMediaType trusts the declared type when it is concrete and sniffs
// the payload otherwise. Declared parameters (charset etc.) are stripped.
func resolveMediaType(data []byte, declared string) string {
	declared = stripParams(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return stripParams(mimetype.Detect(data).String())
}

func stripParams(mediaType string) string {
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	return mediaType
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", domain.WrapError(domain.ErrExtractionFailed, "decode plain text",
			errors.New("payload is not valid UTF-8"))
	}
	return strings.TrimSpace(string(data)), nil
}
