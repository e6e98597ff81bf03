package document

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"

	"github.com/clauseguard/backend/internal/core/domain"
)

// extractDOC handles legacy Word binaries. It opens the CFB container and
// scrapes readable text from the WordDocument stream. This is a best-effort
// recovery, not a full FIB/piece-table parse: layout artifacts and field
// codes may leak into the output.
func extractDOC(data []byte) (string, error) {
	container, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "open doc container", err)
	}

	for entry, err := container.Next(); err == nil; entry, err = container.Next() {
		if entry.Name != "WordDocument" {
			continue
		}
		stream, readErr := io.ReadAll(entry)
		if readErr != nil {
			return "", domain.WrapError(domain.ErrExtractionFailed, "read doc stream", readErr)
		}
		text := scrapeText(stream)
		if text == "" {
			return "", domain.WrapError(domain.ErrExtractionFailed, "scrape doc stream",
				errors.New("no readable text found"))
		}
		return text, nil
	}

	return "", domain.WrapError(domain.ErrExtractionFailed, "open doc container",
		errors.New("WordDocument stream not found"))
}

// scrapeText keeps printable runs of at least minRunLen characters, decoding
// UTF-16LE regions where the byte pattern indicates them.
func scrapeText(stream []byte) string {
	const minRunLen = 4

	decoded := decodeStream(stream)

	var sb strings.Builder
	var run []rune
	flush := func() {
		if len(run) >= minRunLen {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strings.TrimSpace(string(run)))
		}
		run = run[:0]
	}

	for _, r := range decoded {
		if unicode.IsPrint(r) || r == '\t' {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return strings.TrimSpace(sb.String())
}

// decodeStream picks UTF-16LE when the stream shows the characteristic
// zero-high-byte pattern of Word Unicode text, plain bytes otherwise.
func decodeStream(stream []byte) []rune {
	if looksUTF16(stream) {
		u16 := make([]uint16, 0, len(stream)/2)
		for i := 0; i+1 < len(stream); i += 2 {
			u16 = append(u16, uint16(stream[i])|uint16(stream[i+1])<<8)
		}
		return utf16.Decode(u16)
	}

	runes := make([]rune, 0, len(stream))
	for _, b := range stream {
		runes = append(runes, rune(b))
	}
	return runes
}

func looksUTF16(stream []byte) bool {
	if len(stream) < 64 {
		return false
	}
	zeros := 0
	total := 0
	for i := 1; i < len(stream); i += 2 {
		if stream[i] == 0 {
			zeros++
		}
		total++
	}
	return total > 0 && float64(zeros)/float64(total) > 0.4
}
