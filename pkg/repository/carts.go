package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection("carts")}
}

func (r *CartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

// AddItem merges quantity into an existing line or appends a new one. The
// increment targets the matching array element so concurrent adds of the same
// product don't lose updates.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID string, quantity int64) (*models.Cart, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{"$inc": bson.M{"items.$.quantity": quantity}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bump cart quantity: %w", err)
	}

	if res.MatchedCount == 0 {
		item := models.CartItem{ProductID: productID, Quantity: quantity}
		_, err = r.coll.UpdateOne(ctx,
			bson.M{"user_id": userID},
			bson.M{"$push": bson.M{"items": item}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return r.Get(ctx, userID)
}

// UpdateItem sets a line's quantity; zero or negative removes the line.
func (r *CartRepository) UpdateItem(ctx context.Context, userID, productID string, quantity int64) (*models.Cart, error) {
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, productID)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{"$set": bson.M{"items.$.quantity": quantity}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrCartNotFound
	}

	return r.Get(ctx, userID)
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"product_id": productID}}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrCartNotFound
	}

	return r.Get(ctx, userID)
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
