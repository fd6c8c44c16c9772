package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// FaceVaultService stores one reference embedding per owner. The point ID is
// derived from the owner ID, so re-registration overwrites the previous
// embedding in place (no versioning).
type FaceVaultService interface {
	InitCollection(ctx context.Context, vectorSize int) error
	Upsert(ctx context.Context, ownerID, modelTag string, embedding []float32) error
	// Fetch returns the stored embedding and its model tag, or found=false
	// when the owner has no reference.
	Fetch(ctx context.Context, ownerID string) (embedding []float32, modelTag string, found bool, err error)
	Delete(ctx context.Context, ownerID string) error
}

type faceVaultService struct {
	client         *qdrant.Client
	collectionName string
}

func NewFaceVaultService(urlStr, apiKey, collectionName string) (FaceVaultService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port by default.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &faceVaultService{
		client:         client,
		collectionName: collectionName,
	}, nil
}

// pointID derives a stable point ID from the owner so each owner holds
// exactly one point in the collection.
func pointID(ownerID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(ownerID)).String()
}

// InitCollection implements FaceVaultService.
func (v *faceVaultService) InitCollection(ctx context.Context, vectorSize int) error {
	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// Upsert implements FaceVaultService.
func (v *faceVaultService) Upsert(ctx context.Context, ownerID, modelTag string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(pointID(ownerID)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"owner_id":  ownerID,
			"model_tag": modelTag,
		}),
	}

	_, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert reference embedding: %w", err)
	}

	return nil
}

// Fetch implements FaceVaultService.
func (v *faceVaultService) Fetch(ctx context.Context, ownerID string) ([]float32, string, bool, error) {
	points, err := v.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: v.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(pointID(ownerID))},
		WithVectors:    qdrant.NewWithVectors(true),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to fetch reference embedding: %w", err)
	}

	if len(points) == 0 {
		return nil, "", false, nil
	}

	point := points[0]

	var embedding []float32
	if vectors := point.GetVectors(); vectors != nil {
		if vec := vectors.GetVector(); vec != nil {
			embedding = vec.GetData()
		}
	}
	if len(embedding) == 0 {
		return nil, "", false, fmt.Errorf("stored point for %s has no vector", ownerID)
	}

	modelTag := ""
	if tag, ok := point.GetPayload()["model_tag"]; ok {
		modelTag = tag.GetStringValue()
	}

	return embedding, modelTag, true, nil
}

// Delete implements FaceVaultService.
func (v *faceVaultService) Delete(ctx context.Context, ownerID string) error {
	_, err := v.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: v.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(pointID(ownerID))),
	})
	if err != nil {
		return fmt.Errorf("failed to delete reference embedding: %w", err)
	}

	return nil
}
