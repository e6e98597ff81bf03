package chunking

import (
	"regexp"
	"strings"
)

// sentencePattern matches a run of text ending in sentence-terminal
// punctuation, optionally followed by a closing quote or bracket.
var sentencePattern = regexp.MustCompile(`[^.!?]*[.!?]+["')\]]*`)

// SentenceSplitter accumulates whole sentences into chunks bounded by
// MaxChunkChars. A single sentence longer than the bound is emitted as an
// oversized chunk rather than split mid-sentence.
type SentenceSplitter struct {
	MaxChunkChars int
}

func NewSentenceSplitter(maxChunkChars int) *SentenceSplitter {
	if maxChunkChars <= 0 {
		maxChunkChars = 500
	}
	return &SentenceSplitter{MaxChunkChars: maxChunkChars}
}

func (s *SentenceSplitter) Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	sentences := segment(trimmed)

	out := make([]string, 0, len(trimmed)/s.MaxChunkChars+1)
	var buf strings.Builder
	for _, sentence := range sentences {
		if buf.Len() > 0 && buf.Len()+1+len(sentence) > s.MaxChunkChars {
			out = append(out, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sentence)
	}
	if buf.Len() > 0 {
		out = append(out, buf.String())
	}
	return out
}

// segment returns trimmed sentences; trailing text without terminal
// punctuation is kept as a final sentence.
func segment(text string) []string {
	matches := sentencePattern.FindAllStringIndex(text, -1)
	sentences := make([]string, 0, len(matches)+1)

	last := 0
	for _, m := range matches {
		sentence := strings.TrimSpace(text[m[0]:m[1]])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		last = m[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	if len(sentences) == 0 {
		sentences = append(sentences, text)
	}
	return sentences
}
