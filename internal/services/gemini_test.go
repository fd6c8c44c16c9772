package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassifyModelError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "quota status code",
			err:      genai.APIError{Code: http.StatusTooManyRequests, Message: "quota exceeded"},
			expected: ErrRateLimited,
		},
		{
			name:     "resource exhausted status",
			err:      genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED", Message: "quota"},
			expected: ErrRateLimited,
		},
		{
			name:     "other api error",
			err:      genai.APIError{Code: http.StatusInternalServerError, Message: "backend error"},
			expected: ErrConnectivity,
		},
		{
			name:     "plain 429 message",
			err:      errors.New("googleapi: Error 429: too many requests"),
			expected: ErrRateLimited,
		},
		{
			name:     "rate limit message",
			err:      errors.New("request rejected: rate limit"),
			expected: ErrRateLimited,
		},
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("generate: %w", context.DeadlineExceeded),
			expected: ErrConnectivity,
		},
		{
			name:     "context canceled",
			err:      context.Canceled,
			expected: ErrConnectivity,
		},
		{
			name:     "network failure",
			err:      errors.New("dial tcp: connection refused"),
			expected: ErrConnectivity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyModelError(tt.err), tt.expected)
		})
	}
}
