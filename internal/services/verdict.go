package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MatchVerdict is the model's judgement of resume-to-job fit.
type MatchVerdict struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// StripCodeFence removes a leading and trailing triple-backtick fence, with
// an optional language tag and surrounding whitespace, from model output.
// Unfenced text passes through unchanged.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = stripFenceTag(text[3:])
	}

	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-3]
	}

	return strings.TrimSpace(text)
}

// stripFenceTag drops a language tag ("json", "JSON", ...) after the opening
// fence. The tag may sit on its own line or run straight into the payload
// ("```json{...}").
func stripFenceTag(rest string) string {
	n := 0
	for n < len(rest) && isTagChar(rest[n]) {
		n++
	}
	if n == 0 || n > 16 {
		return rest
	}
	if n == len(rest) {
		return ""
	}
	switch rest[n] {
	case '\n', '\r', ' ', '\t', '{', '[':
		return rest[n:]
	}
	return rest
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// parseVerdict decodes the model response into a MatchVerdict, enforcing the
// mandated shape and the 0-100 score bound.
func parseVerdict(response string) (*MatchVerdict, error) {
	cleaned := StripCodeFence(response)

	var raw struct {
		Score       *int    `json:"score"`
		Explanation *string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}

	if raw.Score == nil || raw.Explanation == nil {
		return nil, fmt.Errorf("%w: missing required keys", ErrResponseParse)
	}

	if *raw.Score < 0 || *raw.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range", ErrResponseParse, *raw.Score)
	}

	return &MatchVerdict{
		Score:       *raw.Score,
		Explanation: SanitizeText(*raw.Explanation),
	}, nil
}
