package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ScorerService produces a bounded, explainable match score between a resume
// PDF and a job description/skill list.
type ScorerService interface {
	EvaluateCandidate(ctx context.Context, resumePDF []byte, jobDescription, requiredSkills string) (*MatchVerdict, error)
}

type scorerService struct {
	models        []ScoringModel
	parser        ResumeParserService
	prompt        *PromptBuilder
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
	logger        *zap.Logger
}

// NewScorerService wires the scoring pipeline. models must hold one client
// per configured API credential, in rotation order. retryAttempts bounds how
// often a transient failure on one credential is retried before giving up.
func NewScorerService(
	models []ScoringModel,
	parser ResumeParserService,
	timeout time.Duration,
	retryAttempts int,
	retryDelay time.Duration,
	logger *zap.Logger,
) (ScorerService, error) {
	if len(models) == 0 {
		return nil, errors.New("at least one scoring model is required")
	}
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &scorerService{
		models:        models,
		parser:        parser,
		prompt:        NewPromptBuilder(),
		timeout:       timeout,
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
		logger:        logger,
	}, nil
}

// EvaluateCandidate implements ScorerService.
//
// Resume content preference: extracted text first; if the PDF yields no text
// (scanned resumes), up to three page images instead. Credentials are tried
// in order and advanced only on a rate-limit rejection; transient failures
// are retried on the same credential before the evaluation fails.
func (s *scorerService) EvaluateCandidate(ctx context.Context, resumePDF []byte, jobDescription, requiredSkills string) (*MatchVerdict, error) {
	jobDescription = SanitizeText(jobDescription)
	requiredSkills = SanitizeText(requiredSkills)

	resumeText, err := s.parser.ExtractText(resumePDF)
	if err != nil {
		// Soft failure: continue to the image path.
		s.logger.Warn("resume text extraction failed, falling back to images", zap.Error(err))
		resumeText = ""
	}

	var resumeImages [][]byte
	if resumeText == "" {
		resumeImages, err = s.parser.ExtractImages(resumePDF, maxResumePages)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("using image fallback for scanned resume", zap.Int("pages", len(resumeImages)))
	}

	prompt := s.prompt.BuildMatchPrompt(jobDescription, requiredSkills)

	response, err := s.generateWithRotation(ctx, prompt, resumeText, resumeImages)
	if err != nil {
		return nil, err
	}

	return parseVerdict(response)
}

// generateWithRotation walks the credential list in order. A rate-limited
// credential is skipped in favor of the next; any other failure surfaces
// immediately. Exhausting every credential reports ErrRateLimited, distinct
// from a generic connectivity failure.
func (s *scorerService) generateWithRotation(ctx context.Context, prompt, resumeText string, resumeImages [][]byte) (string, error) {
	for i, model := range s.models {
		response, err := s.generateWithRetry(ctx, model, prompt, resumeText, resumeImages)
		if err == nil {
			return response, nil
		}

		if errors.Is(err, ErrRateLimited) {
			s.logger.Warn("scoring credential rate-limited, rotating",
				zap.Int("credential_index", i),
				zap.Error(err))
			continue
		}

		return "", err
	}

	return "", ErrRateLimited
}

// generateWithRetry retries transient failures on a single credential with a
// doubling delay. Rate-limit rejections are not retried here; the caller
// rotates to the next credential instead.
func (s *scorerService) generateWithRetry(ctx context.Context, model ScoringModel, prompt, resumeText string, resumeImages [][]byte) (string, error) {
	var lastErr error
	delay := s.retryDelay

	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		response, err := model.GenerateVerdict(callCtx, prompt, resumeText, resumeImages)
		cancel()

		if err == nil {
			return response, nil
		}
		if errors.Is(err, ErrRateLimited) {
			return "", err
		}

		lastErr = err
		if attempt == s.retryAttempts {
			break
		}

		s.logger.Warn("model request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrConnectivity, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", lastErr
}
