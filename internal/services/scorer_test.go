package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScoringModel struct {
	response  string
	err       error
	calls     int
	gotImages [][]byte
}

func (m *fakeScoringModel) GenerateVerdict(ctx context.Context, prompt, resumeText string, resumeImages [][]byte) (string, error) {
	m.calls++
	m.gotImages = resumeImages
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type fakeResumeParser struct {
	text      string
	textErr   error
	images    [][]byte
	imagesErr error
}

func (p *fakeResumeParser) ExtractText(pdfBytes []byte) (string, error) {
	return p.text, p.textErr
}

func (p *fakeResumeParser) ExtractImages(pdfBytes []byte, maxPages int) ([][]byte, error) {
	return p.images, p.imagesErr
}

const goodResponse = `{"score": 72, "explanation": "Relevant backend experience."}`

func newTestScorer(t *testing.T, parser ResumeParserService, models ...ScoringModel) ScorerService {
	t.Helper()
	scorer, err := NewScorerService(models, parser, 5*time.Second, 1, time.Millisecond, nil)
	require.NoError(t, err)
	return scorer
}

func newRetryingScorer(t *testing.T, attempts int, models ...ScoringModel) ScorerService {
	t.Helper()
	scorer, err := NewScorerService(models, &fakeResumeParser{text: "Go developer"}, 5*time.Second, attempts, time.Millisecond, nil)
	require.NoError(t, err)
	return scorer
}

func TestNewScorerServiceRequiresModels(t *testing.T) {
	_, err := NewScorerService(nil, &fakeResumeParser{}, time.Second, 1, time.Millisecond, nil)
	assert.Error(t, err)
}

func TestEvaluateCandidateHappyPath(t *testing.T) {
	model := &fakeScoringModel{response: goodResponse}
	scorer := newTestScorer(t, &fakeResumeParser{text: "Go developer"}, model)

	verdict, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go, Postgres")
	require.NoError(t, err)

	assert.Equal(t, 72, verdict.Score)
	assert.Equal(t, "Relevant backend experience.", verdict.Explanation)
	assert.Equal(t, 1, model.calls)
	assert.Empty(t, model.gotImages)
}

func TestEvaluateCandidateRotatesOnRateLimit(t *testing.T) {
	limited := &fakeScoringModel{err: fmt.Errorf("%w: quota exceeded", ErrRateLimited)}
	healthy := &fakeScoringModel{response: goodResponse}

	scorer := newTestScorer(t, &fakeResumeParser{text: "Go developer"}, limited, healthy)

	verdict, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
	require.NoError(t, err)

	assert.Equal(t, 72, verdict.Score)
	assert.Equal(t, 1, limited.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestEvaluateCandidateAllKeysExhausted(t *testing.T) {
	first := &fakeScoringModel{err: fmt.Errorf("%w: quota exceeded", ErrRateLimited)}
	second := &fakeScoringModel{err: fmt.Errorf("%w: quota exceeded", ErrRateLimited)}

	scorer := newTestScorer(t, &fakeResumeParser{text: "Go developer"}, first, second)

	_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrConnectivity)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestEvaluateCandidateAbortsOnNonRateLimitError(t *testing.T) {
	broken := &fakeScoringModel{err: fmt.Errorf("%w: connection refused", ErrConnectivity)}
	spare := &fakeScoringModel{response: goodResponse}

	scorer := newTestScorer(t, &fakeResumeParser{text: "Go developer"}, broken, spare)

	_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrConnectivity)
	assert.Equal(t, 1, broken.calls)
	assert.Zero(t, spare.calls, "rotation must not continue past a non-rate-limit failure")
}

func TestEvaluateCandidateImageFallback(t *testing.T) {
	scan := []byte{0xFF, 0xD8, 0xFF, 0x01, 0x02, 0xFF, 0xD9}

	t.Run("empty text falls back to images", func(t *testing.T) {
		model := &fakeScoringModel{response: goodResponse}
		parser := &fakeResumeParser{text: "", images: [][]byte{scan}}
		scorer := newTestScorer(t, parser, model)

		_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
		require.NoError(t, err)

		assert.Len(t, model.gotImages, 1)
	})

	t.Run("extraction error is soft and falls back", func(t *testing.T) {
		model := &fakeScoringModel{response: goodResponse}
		parser := &fakeResumeParser{
			textErr: fmt.Errorf("%w: corrupt xref", ErrExtraction),
			images:  [][]byte{scan},
		}
		scorer := newTestScorer(t, parser, model)

		_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
		require.NoError(t, err)

		assert.Equal(t, 1, model.calls)
	})

	t.Run("no text and no images fails", func(t *testing.T) {
		model := &fakeScoringModel{response: goodResponse}
		parser := &fakeResumeParser{
			imagesErr: fmt.Errorf("%w: no embedded page images found", ErrExtraction),
		}
		scorer := newTestScorer(t, parser, model)

		_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
		assert.ErrorIs(t, err, ErrExtraction)
		assert.Zero(t, model.calls)
	})
}

// flakyScoringModel fails with a transient error a fixed number of times
// before succeeding.
type flakyScoringModel struct {
	failures int
	calls    int
}

func (m *flakyScoringModel) GenerateVerdict(ctx context.Context, prompt, resumeText string, resumeImages [][]byte) (string, error) {
	m.calls++
	if m.calls <= m.failures {
		return "", fmt.Errorf("%w: connection reset", ErrConnectivity)
	}
	return goodResponse, nil
}

func TestEvaluateCandidateRetriesTransientFailures(t *testing.T) {
	model := &flakyScoringModel{failures: 2}
	scorer := newRetryingScorer(t, 3, model)

	verdict, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
	require.NoError(t, err)

	assert.Equal(t, 72, verdict.Score)
	assert.Equal(t, 3, model.calls)
}

func TestEvaluateCandidateRetriesAreBounded(t *testing.T) {
	model := &flakyScoringModel{failures: 10}
	scorer := newRetryingScorer(t, 3, model)

	_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
	assert.ErrorIs(t, err, ErrConnectivity)
	assert.Equal(t, 3, model.calls)
}

func TestEvaluateCandidateDoesNotRetryRateLimits(t *testing.T) {
	// A rate-limited credential rotates instead of burning retries.
	limited := &fakeScoringModel{err: fmt.Errorf("%w: quota exceeded", ErrRateLimited)}
	healthy := &fakeScoringModel{response: goodResponse}

	scorer := newRetryingScorer(t, 3, limited, healthy)

	_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
	require.NoError(t, err)

	assert.Equal(t, 1, limited.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestEvaluateCandidateUnparseableResponse(t *testing.T) {
	model := &fakeScoringModel{response: "I would rate this candidate highly."}
	scorer := newTestScorer(t, &fakeResumeParser{text: "Go developer"}, model)

	_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
	assert.ErrorIs(t, err, ErrResponseParse)
}

func TestEvaluateCandidateNeverRetriesForever(t *testing.T) {
	// A model that keeps reporting rate limits must terminate after one
	// pass over the credential list.
	model := &fakeScoringModel{err: fmt.Errorf("%w: quota exceeded", ErrRateLimited)}
	scorer := newTestScorer(t, &fakeResumeParser{text: "Go developer"}, model)

	done := make(chan error, 1)
	go func() {
		_, err := scorer.EvaluateCandidate(context.Background(), []byte("%PDF"), "Backend engineer", "Go")
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, 1, model.calls)
	case <-time.After(2 * time.Second):
		t.Fatal("evaluation did not terminate")
	}
}

func TestBuildMatchPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildMatchPrompt("Senior Go engineer", "Go, Kubernetes")

	assert.Contains(t, prompt, "Senior Go engineer")
	assert.Contains(t, prompt, "Go, Kubernetes")
	assert.Contains(t, prompt, `"score"`)
	assert.Contains(t, prompt, `"explanation"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "RESUME:"))
}
