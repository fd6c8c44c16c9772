package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

// VerificationResult reports one verification attempt. A similarity below
// threshold is a valid negative outcome, not an error.
type VerificationResult struct {
	Matched    bool
	Similarity float64
	Threshold  float64
}

// LivenessResult reports a two-shot blink challenge.
type LivenessResult struct {
	Live    bool
	EAROpen float64
	EARShut float64
	Margin  float64
}

// FaceAuthService binds a face captured from a camera frame to an account at
// registration time and confirms a probe face against the stored reference
// at login time.
type FaceAuthService interface {
	Register(ctx context.Context, ownerID string, frame []byte) error
	Verify(ctx context.Context, ownerID string, frame []byte) (*VerificationResult, error)
	CheckLiveness(ctx context.Context, openFrame, closedFrame []byte) (*LivenessResult, error)
}

type faceAuthService struct {
	encoder        FaceEncoder
	vault          FaceVaultService
	enrollments    repositories.FaceEnrollmentRepository
	matchThreshold float64
	livenessMargin float64
	logger         *zap.Logger
}

func NewFaceAuthService(
	encoder FaceEncoder,
	vault FaceVaultService,
	enrollments repositories.FaceEnrollmentRepository,
	matchThreshold float64,
	livenessMargin float64,
	logger *zap.Logger,
) FaceAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &faceAuthService{
		encoder:        encoder,
		vault:          vault,
		enrollments:    enrollments,
		matchThreshold: matchThreshold,
		livenessMargin: livenessMargin,
		logger:         logger,
	}
}

// Register implements FaceAuthService. When the frame contains several faces
// the largest bounding box wins; re-registration overwrites the previous
// reference.
func (s *faceAuthService) Register(ctx context.Context, ownerID string, frame []byte) error {
	detection, err := s.detectPrimary(ctx, frame)
	if err != nil {
		return err
	}

	modelTag := s.encoder.ModelTag()
	if err := s.vault.Upsert(ctx, ownerID, modelTag, detection.Embedding); err != nil {
		return fmt.Errorf("failed to store reference embedding: %w", err)
	}

	now := time.Now()
	if err := s.enrollments.Upsert(&models.FaceEnrollment{
		OwnerID:      ownerID,
		ModelTag:     modelTag,
		EmbeddingDim: len(detection.Embedding),
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return fmt.Errorf("failed to record enrollment: %w", err)
	}

	s.logger.Info("face registered",
		zap.String("owner", ownerID),
		zap.String("model_tag", modelTag),
		zap.Int("dim", len(detection.Embedding)))

	return nil
}

// Verify implements FaceAuthService.
func (s *faceAuthService) Verify(ctx context.Context, ownerID string, frame []byte) (*VerificationResult, error) {
	reference, storedTag, found, err := s.vault.Fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoReference
	}

	if storedTag != s.encoder.ModelTag() {
		return nil, fmt.Errorf("%w: stored %q, active %q", ErrEncoderMismatch, storedTag, s.encoder.ModelTag())
	}

	detection, err := s.detectPrimary(ctx, frame)
	if err != nil {
		return nil, err
	}

	similarity, err := CosineSimilarity(detection.Embedding, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to compare embeddings: %w", err)
	}

	result := &VerificationResult{
		Matched:    similarity >= s.matchThreshold,
		Similarity: similarity,
		Threshold:  s.matchThreshold,
	}

	s.logger.Info("face verification attempt",
		zap.String("owner", ownerID),
		zap.Float64("similarity", similarity),
		zap.Float64("threshold", s.matchThreshold),
		zap.Bool("matched", result.Matched))

	return result, nil
}

// CheckLiveness implements FaceAuthService. This is a two-shot blink
// challenge over independently captured stills, not continuous video; the
// eyes must visibly close between the two frames.
func (s *faceAuthService) CheckLiveness(ctx context.Context, openFrame, closedFrame []byte) (*LivenessResult, error) {
	earOpen, err := s.averageEAR(ctx, openFrame)
	if err != nil {
		return nil, err
	}

	earClosed, err := s.averageEAR(ctx, closedFrame)
	if err != nil {
		return nil, err
	}

	return &LivenessResult{
		Live:    earOpen-earClosed > s.livenessMargin,
		EAROpen: earOpen,
		EARShut: earClosed,
		Margin:  s.livenessMargin,
	}, nil
}

func (s *faceAuthService) averageEAR(ctx context.Context, frame []byte) (float64, error) {
	detection, err := s.detectPrimary(ctx, frame)
	if err != nil {
		return 0, err
	}

	if detection.Eyes == nil {
		return 0, fmt.Errorf("%w: encoder reported no eye landmarks", ErrNoFaceDetected)
	}

	left := EyeAspectRatio(detection.Eyes.Left)
	right := EyeAspectRatio(detection.Eyes.Right)
	return (left + right) / 2, nil
}

// detectPrimary runs the encoder and applies the multiple-faces policy:
// largest bounding-box area wins.
func (s *faceAuthService) detectPrimary(ctx context.Context, frame []byte) (*FaceDetection, error) {
	detections, err := s.encoder.DetectFaces(ctx, frame)
	if err != nil {
		return nil, err
	}
	if len(detections) == 0 {
		return nil, ErrNoFaceDetected
	}

	primary := detections[0]
	for _, d := range detections[1:] {
		if d.Area() > primary.Area() {
			primary = d
		}
	}

	return &primary, nil
}
