package services

import (
	"strings"
	"unicode/utf8"
)

// smartPunctReplacer normalizes the "smart" punctuation that PDF extractors
// and LLM output tend to carry into plain ASCII.
var smartPunctReplacer = strings.NewReplacer(
	"•", "-", // bullet
	"‣", "-", // triangular bullet
	"◦", "-", // white bullet
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	" ", " ", // no-break space
)

// SanitizeText drops anything that cannot be round-tripped through UTF-8
// (broken surrogates, stray control bytes) and normalizes smart punctuation.
func SanitizeText(text string) string {
	text = smartPunctReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == utf8.RuneError || !utf8.ValidRune(r) {
			continue
		}
		if r < 0x20 && r != '\n' && r != '\t' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
