package services

import "errors"

// Pipeline failures are communicated with sentinel errors so handlers can map
// each class to a distinct user-facing message. Third-party error types never
// cross a service boundary.
var (
	// ErrExtraction signals resume text/image extraction failed. Soft: the
	// scorer falls back to the image path or surfaces a warning.
	ErrExtraction = errors.New("resume extraction failed")

	// ErrRateLimited signals every configured API credential was rejected
	// with a rate-limit response.
	ErrRateLimited = errors.New("rate limit reached for all keys")

	// ErrResponseParse signals the model output was not the mandated JSON
	// shape. This is a model-output-format error, not a network error.
	ErrResponseParse = errors.New("could not parse model response")

	// ErrConnectivity covers any other API or network failure, including
	// timeouts.
	ErrConnectivity = errors.New("model request failed")

	// ErrNoFaceDetected signals zero faces in a captured frame. Soft: the
	// caller re-prompts for a new frame.
	ErrNoFaceDetected = errors.New("no face detected in frame")

	// ErrNoReference signals no embedding is stored for the claimed
	// identity; the user must register first.
	ErrNoReference = errors.New("no reference face registered")

	// ErrEncoderMismatch signals the stored embedding was produced by a
	// different encoder than the active one. Embeddings are not
	// interoperable across encoders; the user must re-register.
	ErrEncoderMismatch = errors.New("stored embedding was produced by a different encoder")
)
