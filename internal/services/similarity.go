package services

import (
	"errors"
	"math"
)

// CosineSimilarity compares two embeddings. Thresholds across the supported
// encoders are calibrated for cosine similarity; Euclidean distance is not
// threshold-compatible and must not be substituted.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, errors.New("embeddings must be non-empty and of equal length")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-magnitude embedding")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// EyeAspectRatio computes EAR over the six canonical eye-contour landmarks:
// (|p2-p6| + |p3-p5|) / (2*|p1-p4|). Low when the eye is closed.
func EyeAspectRatio(eye [6]Point) float64 {
	horizontal := distance(eye[0], eye[3])
	if horizontal == 0 {
		return 0
	}

	vertical := distance(eye[1], eye[5]) + distance(eye[2], eye[4])
	return vertical / (2 * horizontal)
}

func distance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}
