package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

type CashbackRepository struct {
	coll *mongo.Collection
}

func NewCashbackRepository(db *mongo.Database) *CashbackRepository {
	return &CashbackRepository{coll: db.Collection("cashback_requests")}
}

func (r *CashbackRepository) Insert(ctx context.Context, req *models.CashbackRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert cashback request: %w", err)
	}
	return nil
}

func (r *CashbackRepository) ListByUser(ctx context.Context, userID string) ([]models.CashbackRequest, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashback requests: %w", err)
	}
	defer cur.Close(ctx)

	requests := []models.CashbackRequest{}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode cashback requests: %w", err)
	}
	return requests, nil
}
