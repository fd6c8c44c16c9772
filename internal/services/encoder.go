package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Point is a 2D landmark coordinate in frame pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EyeLandmarks carries the six canonical contour points per eye, ordered
// p1..p6 as used by the eye-aspect-ratio formula.
type EyeLandmarks struct {
	Left  [6]Point `json:"left"`
	Right [6]Point `json:"right"`
}

// FaceDetection is one detected face in a frame.
type FaceDetection struct {
	// Box is the bounding box as x, y, width, height.
	Box [4]float64 `json:"box"`
	// Embedding is the fixed-length identity vector for this face.
	Embedding []float32 `json:"embedding"`
	// Eyes is nil when the encoder does not report landmarks.
	Eyes *EyeLandmarks `json:"eyes,omitempty"`
}

// Area returns the bounding-box area, used for the largest-face policy.
func (d FaceDetection) Area() float64 {
	return d.Box[2] * d.Box[3]
}

// FaceEncoder detects faces in a still frame and computes their embeddings.
// Embeddings from different encoders are not interoperable; ModelTag
// identifies the encoder so stored references are never compared across
// encoder boundaries.
type FaceEncoder interface {
	ModelTag() string
	// DetectFaces returns every face found in the encoded (JPEG/PNG) frame.
	// Zero faces is reported as ErrNoFaceDetected.
	DetectFaces(ctx context.Context, frame []byte) ([]FaceDetection, error)
}

// remoteEncoder calls a face inference sidecar over HTTP. The sidecar owns
// the actual detector/embedding model; this process only transports frames
// and vectors.
type remoteEncoder struct {
	baseURL  string
	modelTag string
	client   *http.Client
}

func NewRemoteFaceEncoder(baseURL, modelTag string, timeout time.Duration) FaceEncoder {
	return &remoteEncoder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		modelTag: modelTag,
		client:   &http.Client{Timeout: timeout},
	}
}

// ModelTag implements FaceEncoder.
func (e *remoteEncoder) ModelTag() string {
	return e.modelTag
}

type detectRequest struct {
	Frame    string `json:"frame"`
	ModelTag string `json:"model_tag"`
}

type detectResponse struct {
	Faces []FaceDetection `json:"faces"`
	Error string          `json:"error,omitempty"`
}

// DetectFaces implements FaceEncoder.
func (e *remoteEncoder) DetectFaces(ctx context.Context, frame []byte) ([]FaceDetection, error) {
	payload, err := json.Marshal(detectRequest{
		Frame:    base64.StdEncoding.EncodeToString(frame),
		ModelTag: e.modelTag,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/detect", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face encoder request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face encoder returned status %d: %s", resp.StatusCode, body)
	}

	var decoded detectResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode encoder response: %w", err)
	}

	if len(decoded.Faces) == 0 {
		return nil, ErrNoFaceDetected
	}

	return decoded.Faces, nil
}
