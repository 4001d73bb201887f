package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Points(ctx context.Context, userID string) (int64, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.SpoonPoints, nil
}

// CreditPoints adds points to a user's balance.
func (r *UserRepository) CreditPoints(ctx context.Context, userID string, points int64) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"spoon_points": points}},
	)
	if err != nil {
		return fmt.Errorf("failed to credit points: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DebitPoints subtracts points, guarded on the balance staying non-negative.
// The guard is part of the update filter so two concurrent redemptions cannot
// both win.
func (r *UserRepository) DebitPoints(ctx context.Context, userID string, points int64) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "spoon_points": bson.M{"$gte": points}},
		bson.M{"$inc": bson.M{"spoon_points": -points}},
	)
	if err := res.Err(); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("failed to debit points: %w", err)
		}
		// Either the user is missing or the balance is too low.
		if _, getErr := r.GetByID(ctx, userID); getErr != nil {
			return getErr
		}
		return ErrInsufficientPoints
	}
	return nil
}
