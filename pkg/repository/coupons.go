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

type CouponRepository struct {
	coupons *mongo.Collection
	claimed *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{
		coupons: db.Collection("coupons"),
		claimed: db.Collection("claimed_coupons"),
	}
}

// Insert stores operator-defined master coupons. Duplicate codes are reported
// per coupon code via ErrCouponExists.
func (r *CouponRepository) Insert(ctx context.Context, coupons []models.Coupon) error {
	docs := make([]interface{}, 0, len(coupons))
	now := time.Now()
	for i := range coupons {
		if coupons[i].ID.IsZero() {
			coupons[i].ID = primitive.NewObjectID()
		}
		if coupons[i].CreatedAt.IsZero() {
			coupons[i].CreatedAt = now
		}
		docs = append(docs, coupons[i])
	}

	_, err := r.coupons.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCouponExists
		}
		return fmt.Errorf("failed to insert coupons: %w", err)
	}
	return nil
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return &coupon, nil
}

// ClaimMaster atomically flips the master coupon to claimed. First claim wins:
// the claimed=false guard lives in the update filter, so a lost race surfaces
// as ErrAlreadyClaimed, same as a late arrival.
func (r *CouponRepository) ClaimMaster(ctx context.Context, code, userID string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.coupons.FindOneAndUpdate(ctx,
		bson.M{"code": code, "claimed": false},
		bson.M{"$set": bson.M{"claimed": true, "claimed_by": userID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&coupon)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to claim coupon: %w", err)
		}
		if _, getErr := r.GetByCode(ctx, code); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyClaimed
	}
	return &coupon, nil
}

func (r *CouponRepository) InsertClaimed(ctx context.Context, cc *models.ClaimedCoupon) error {
	if cc.ID.IsZero() {
		cc.ID = primitive.NewObjectID()
	}
	if cc.ClaimedAt.IsZero() {
		cc.ClaimedAt = time.Now()
	}

	if _, err := r.claimed.InsertOne(ctx, cc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyClaimed
		}
		return fmt.Errorf("failed to insert claimed coupon: %w", err)
	}
	return nil
}

// MarkUsed transitions a claimed coupon NotUsed -> Used. Calling it again for
// the same pair matches nothing and is a no-op, which keeps payment
// confirmation retries safe.
func (r *CouponRepository) MarkUsed(ctx context.Context, code, userID string) error {
	_, err := r.claimed.UpdateOne(ctx,
		bson.M{"code": code, "user_id": userID, "status": models.ClaimNotUsed},
		bson.M{"$set": bson.M{"status": models.ClaimUsed}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark coupon used: %w", err)
	}
	return nil
}

func (r *CouponRepository) GetClaimed(ctx context.Context, code, userID string, onlyNotUsed bool) (*models.ClaimedCoupon, error) {
	filter := bson.M{"code": code, "user_id": userID}
	if onlyNotUsed {
		filter["status"] = models.ClaimNotUsed
	}

	var cc models.ClaimedCoupon
	err := r.claimed.FindOne(ctx, filter).Decode(&cc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get claimed coupon: %w", err)
	}
	return &cc, nil
}

func (r *CouponRepository) ListClaimedByUser(ctx context.Context, userID string) ([]models.ClaimedCoupon, error) {
	cur, err := r.claimed.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list claimed coupons: %w", err)
	}
	defer cur.Close(ctx)

	claimed := []models.ClaimedCoupon{}
	if err := cur.All(ctx, &claimed); err != nil {
		return nil, fmt.Errorf("failed to decode claimed coupons: %w", err)
	}
	return claimed, nil
}
