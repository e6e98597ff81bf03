package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/clauseguard/backend/internal/core/domain"
)

// extractDOCX reads word/document.xml out of the OOXML archive and collects
// run text, inserting paragraph breaks at w:p boundaries.
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "open docx archive", err)
	}

	var docXML io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", domain.WrapError(domain.ErrExtractionFailed, "open docx body", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "open docx body",
			errors.New("word/document.xml not found"))
	}
	defer docXML.Close()

	text, err := collectRunText(docXML)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "parse docx body", err)
	}
	return text, nil
}

func collectRunText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
