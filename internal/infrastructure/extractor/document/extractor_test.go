package document

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/clauseguard/backend/internal/core/domain"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor()
	text, err := e.Extract(context.Background(), []byte("  hello world  "), "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "hello world" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractPlainTextWithCharsetParam(t *testing.T) {
	e := NewExtractor()
	text, err := e.Extract(context.Background(), []byte("hi"), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "hi" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractInvalidUTF8Fails(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0xfd}, "text/plain")
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractUnsupportedMediaType(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), []byte("payload"), "application/unknown")
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractSniffsWhenTypeMissing(t *testing.T) {
	e := NewExtractor()
	text, err := e.Extract(context.Background(), []byte("sniff me, I am text"), "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "sniff me") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractCorruptPDFSignalsExtractionFailed(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), []byte("%PDF-1.7 truncated garbage"), "application/pdf")
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractDOCX(t *testing.T) {
	e := NewExtractor()
	payload := buildDOCX(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+
		`<w:body><w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p></w:body></w:document>`)

	text, err := e.Extract(context.Background(), payload,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "First paragraph.") || !strings.Contains(text, "Second paragraph.") {
		t.Fatalf("unexpected text: %q", text)
	}
	if !strings.Contains(text, "\n") {
		t.Fatalf("expected paragraph break in %q", text)
	}
}

func TestExtractDOCXWithoutBodyFails(t *testing.T) {
	e := NewExtractor()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/other.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := f.Write([]byte("<x/>")); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	_, err = e.Extract(context.Background(), buf.Bytes(),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractCorruptDOCFails(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), []byte("not a compound file"), "application/msword")
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}
