package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

type AddressRepository struct {
	coll *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) *AddressRepository {
	return &AddressRepository{coll: db.Collection("addresses")}
}

func (r *AddressRepository) Add(ctx context.Context, address *models.Address) error {
	if address.ID.IsZero() {
		address.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, address); err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

// Get looks up an address scoped to its owner; another user's address id is
// indistinguishable from a missing one.
func (r *AddressRepository) Get(ctx context.Context, addressID, userID string) (*models.Address, error) {
	oid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return nil, ErrAddressNotFound
	}

	var address models.Address
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&address)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &address, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer cur.Close(ctx)

	addresses := []models.Address{}
	if err := cur.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) Update(ctx context.Context, addressID, userID string, in *models.AddressRequest) (*models.Address, error) {
	oid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return nil, ErrAddressNotFound
	}

	var address models.Address
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{
			"full_name":    in.FullName,
			"phone_number": in.PhoneNumber,
			"pincode":      in.Pincode,
			"area":         in.Area,
			"city":         in.City,
			"state":        in.State,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&address)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return &address, nil
}

func (r *AddressRepository) Delete(ctx context.Context, addressID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return ErrAddressNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}
