package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Go developer with 5 years of experience",
			expected: "Go developer with 5 years of experience",
		},
		{
			name:     "smart punctuation normalized",
			input:    "• Led team – delivered “fast” results",
			expected: `- Led team - delivered "fast" results`,
		},
		{
			name:     "curly apostrophe",
			input:    "candidate’s skills",
			expected: "candidate's skills",
		},
		{
			name:     "control bytes dropped",
			input:    "hello\x00world\x07",
			expected: "helloworld",
		},
		{
			name:     "newlines and tabs kept",
			input:    "line one\n\tline two\r\n",
			expected: "line one\n\tline two\r\n",
		},
		{
			name:     "invalid utf8 dropped",
			input:    "resume\xffcontent",
			expected: "resumecontent",
		},
		{
			name:     "non-breaking space normalized",
			input:    "a b",
			expected: "a b",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.input))
		})
	}
}
