package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/clauseguard/backend/internal/core/domain"
)

// extractPDF pulls plain text from a PDF payload. The decoder panics on some
// malformed files, so the whole call is fenced and re-signaled as
// ErrExtractionFailed.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapError(domain.ErrExtractionFailed, "decode pdf",
				fmt.Errorf("decoder panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "decode pdf", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "decode pdf", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "read pdf text", err)
	}
	return strings.TrimSpace(sb.String()), nil
}
