package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

type ProductRepository struct {
	coll     *mongo.Collection
	counters *CounterRepository
}

func NewProductRepository(db *mongo.Database, counters *CounterRepository) *ProductRepository {
	return &ProductRepository{coll: db.Collection("products"), counters: counters}
}

func (r *ProductRepository) Add(ctx context.Context, product *models.Product) error {
	seq, err := r.counters.Next(ctx, "products")
	if err != nil {
		return err
	}

	product.ID = primitive.NewObjectID()
	product.SeqID = seq
	product.Available = true
	product.CreatedAt = time.Now()
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Remove(ctx context.Context, seqID int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"seq_id": seqID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetProduct resolves a product by its hex id. This is the catalog lookup the
// pricing engine prices from.
func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var product models.Product
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// AddReview appends a review, enforcing one review per user inside the update
// filter so a double submit cannot slip in two.
func (r *ProductRepository) AddReview(ctx context.Context, productID, userID string, rating int, comment string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrProductNotFound
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "reviews.user_id": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"reviews": review}},
	)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := r.GetProduct(ctx, productID); getErr != nil {
			return getErr
		}
		return ErrAlreadyReviewed
	}
	return nil
}

func (r *ProductRepository) UpdateReview(ctx context.Context, productID, userID string, rating int, comment string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrProductNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "reviews.user_id": userID},
		bson.M{"$set": bson.M{
			"reviews.$.rating":  rating,
			"reviews.$.comment": comment,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := r.GetProduct(ctx, productID); getErr != nil {
			return getErr
		}
		return ErrReviewNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteReview(ctx context.Context, productID, reviewID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrProductNotFound
	}
	rid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return ErrReviewNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"reviews": bson.M{"_id": rid, "user_id": userID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}
