package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

// EvaluatorService drives a queued evaluation end to end: load the job and
// resume document, run the scoring pipeline, persist the verdict.
type EvaluatorService interface {
	EvaluateCandidate(ctx context.Context, evalID uuid.UUID) error
}

type evaluatorService struct {
	evalRepo  repositories.EvaluationRepository
	docRepo   repositories.DocumentRepository
	jobRepo   repositories.JobRepository
	appRepo   repositories.ApplicationRepository
	notifRepo repositories.NotificationRepository
	scorer    ScorerService
	logger    *zap.Logger
}

func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	docRepo repositories.DocumentRepository,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	notifRepo repositories.NotificationRepository,
	scorer ScorerService,
	logger *zap.Logger,
) EvaluatorService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &evaluatorService{
		evalRepo:  evalRepo,
		docRepo:   docRepo,
		jobRepo:   jobRepo,
		appRepo:   appRepo,
		notifRepo: notifRepo,
		scorer:    scorer,
		logger:    logger,
	}
}

func (e *evaluatorService) EvaluateCandidate(ctx context.Context, evalID uuid.UUID) error {
	if err := e.evalRepo.UpdateStatus(evalID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log := e.logger.With(zap.String("evaluation_id", evalID.String()))
	log.Info("starting evaluation")

	evaluation, err := e.evalRepo.FindByID(evalID)
	if err != nil {
		e.fail(evalID, models.ErrorKindConnectivity, err)
		return fmt.Errorf("failed to get evaluation: %w", err)
	}

	job, err := e.jobRepo.FindByID(evaluation.JobID)
	if err != nil {
		e.fail(evalID, models.ErrorKindConnectivity, fmt.Errorf("job not found: %w", err))
		return fmt.Errorf("failed to get job: %w", err)
	}

	resumeDoc, err := e.docRepo.FindByID(evaluation.ResumeDocumentID)
	if err != nil {
		e.fail(evalID, models.ErrorKindConnectivity, fmt.Errorf("resume document not found: %w", err))
		return fmt.Errorf("failed to get resume document: %w", err)
	}

	resumePDF, err := os.ReadFile(resumeDoc.FilePath)
	if err != nil {
		e.fail(evalID, models.ErrorKindExtraction, fmt.Errorf("failed to read resume file: %w", err))
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	verdict, err := e.scorer.EvaluateCandidate(ctx, resumePDF, job.Description, job.SkillsRequired)
	if err != nil {
		e.fail(evalID, classifyErrorKind(err), err)
		return fmt.Errorf("failed to score candidate: %w", err)
	}

	if err := e.evalRepo.UpdateResult(evalID, verdict.Score, verdict.Explanation); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	if evaluation.ApplicationID != nil {
		e.recordApplicationMatch(*evaluation.ApplicationID, job, verdict)
	}

	log.Info("evaluation completed", zap.Int("score", verdict.Score))
	return nil
}

// recordApplicationMatch copies the verdict onto the application and tells
// the applicant. Failures here leave the completed evaluation intact.
func (e *evaluatorService) recordApplicationMatch(appID uuid.UUID, job *models.Job, verdict *MatchVerdict) {
	if err := e.appRepo.UpdateMatch(appID, verdict.Score, verdict.Explanation); err != nil {
		e.logger.Warn("failed to update application match", zap.Error(err))
		return
	}

	app, err := e.appRepo.FindByID(appID)
	if err != nil {
		e.logger.Warn("failed to load application for notification", zap.Error(err))
		return
	}

	notification := &models.Notification{
		UserID:    app.EmployeeID,
		Type:      "match_score",
		Title:     "Resume evaluated",
		Message:   fmt.Sprintf("Your resume scored %d/100 for %q.", verdict.Score, job.Title),
		RelatedID: &appID,
	}
	if err := e.notifRepo.Create(notification); err != nil {
		e.logger.Warn("failed to create notification", zap.Error(err))
	}
}

func (e *evaluatorService) fail(evalID uuid.UUID, kind models.ErrorKind, cause error) {
	if err := e.evalRepo.UpdateError(evalID, kind, cause.Error()); err != nil {
		e.logger.Error("failed to record evaluation error", zap.Error(err))
	}
}

func classifyErrorKind(err error) models.ErrorKind {
	switch {
	case errors.Is(err, ErrRateLimited):
		return models.ErrorKindRateLimited
	case errors.Is(err, ErrResponseParse):
		return models.ErrorKindParseFailure
	case errors.Is(err, ErrExtraction):
		return models.ErrorKindExtraction
	default:
		return models.ErrorKindConnectivity
	}
}
