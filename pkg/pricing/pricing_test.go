package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
)

type mapCatalog map[string]int64

func (m mapCatalog) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	price, ok := m[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &models.Product{NewPrice: price, Available: true}, nil
}

type mapCoupons map[string]models.ClaimedCoupon

func (m mapCoupons) GetClaimed(ctx context.Context, code, userID string, onlyNotUsed bool) (*models.ClaimedCoupon, error) {
	cc, ok := m[code]
	if !ok || cc.UserID != userID || (onlyNotUsed && cc.Status != models.ClaimNotUsed) {
		return nil, repository.ErrCouponNotFound
	}
	return &cc, nil
}

func TestQuoteSumsSnapshotPrices(t *testing.T) {
	engine := NewEngine(mapCatalog{"p1": 500, "p2": 300}, mapCoupons{})

	quote, err := engine.Quote(context.Background(), "u1", []Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}, "", models.PaymentRazorpay, Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(1300), quote.TotalAmount)
	assert.Equal(t, int64(0), quote.CODFee)
	require.Len(t, quote.Items, 2)
	assert.Equal(t, int64(500), quote.Items[0].PriceAtPurchase)
	assert.Equal(t, int64(300), quote.Items[1].PriceAtPurchase)
	assert.Nil(t, quote.Coupon)
}

func TestQuoteDiscountCoupon(t *testing.T) {
	coupons := mapCoupons{"WELCOME": {
		UserID:      "u1",
		Code:        "WELCOME",
		RewardType:  models.RewardDiscount,
		RewardValue: models.RewardValue{Amount: 200},
		Status:      models.ClaimNotUsed,
	}}
	engine := NewEngine(mapCatalog{"p1": 500, "p2": 300}, coupons)

	quote, err := engine.Quote(context.Background(), "u1", []Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}, "WELCOME", models.PaymentRazorpay, Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(1100), quote.TotalAmount)
	require.NotNil(t, quote.Coupon)
	assert.Equal(t, "WELCOME", quote.Coupon.Code)
	assert.Equal(t, int64(200), quote.Coupon.RewardValue.Amount)
}

func TestQuoteDiscountClampsAtZero(t *testing.T) {
	coupons := mapCoupons{"BIG": {
		UserID:      "u1",
		Code:        "BIG",
		RewardType:  models.RewardDiscount,
		RewardValue: models.RewardValue{Amount: 5000},
		Status:      models.ClaimNotUsed,
	}}
	engine := NewEngine(mapCatalog{"p1": 500}, coupons)

	quote, err := engine.Quote(context.Background(), "u1",
		[]Line{{ProductID: "p1", Quantity: 1}}, "BIG", models.PaymentRazorpay, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), quote.TotalAmount)
}

func TestQuoteNonDiscountCouponLeavesTotal(t *testing.T) {
	coupons := mapCoupons{"PTS": {
		UserID:      "u1",
		Code:        "PTS",
		RewardType:  models.RewardSample,
		RewardValue: models.RewardValue{Ref: "sample-pack"},
		Status:      models.ClaimNotUsed,
	}}
	engine := NewEngine(mapCatalog{"p1": 500}, coupons)

	quote, err := engine.Quote(context.Background(), "u1",
		[]Line{{ProductID: "p1", Quantity: 2}}, "PTS", models.PaymentRazorpay, Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), quote.TotalAmount)
	require.NotNil(t, quote.Coupon)
	assert.Equal(t, models.RewardSample, quote.Coupon.RewardType)
}

func TestQuoteCODFeePolicy(t *testing.T) {
	coupons := mapCoupons{"OFF": {
		UserID:      "u1",
		Code:        "OFF",
		RewardType:  models.RewardDiscount,
		RewardValue: models.RewardValue{Amount: 150},
		Status:      models.ClaimNotUsed,
	}}
	engine := NewEngine(mapCatalog{"p1": 100}, coupons)
	lines := []Line{{ProductID: "p1", Quantity: 1}}

	// Fee outside the discount base: clamp(100-150) + 50.
	quote, err := engine.Quote(context.Background(), "u1", lines, "OFF",
		models.PaymentCOD, Options{CODFee: 50, CODFeeAfterDiscount: true})
	require.NoError(t, err)
	assert.Equal(t, int64(50), quote.TotalAmount)
	assert.Equal(t, int64(50), quote.CODFee)

	// Fee inside the discount base: clamp(100+50-150).
	quote, err = engine.Quote(context.Background(), "u1", lines, "OFF",
		models.PaymentCOD, Options{CODFee: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(0), quote.TotalAmount)
}

func TestQuoteRejectsBadInput(t *testing.T) {
	engine := NewEngine(mapCatalog{"p1": 500}, mapCoupons{})

	_, err := engine.Quote(context.Background(), "u1",
		[]Line{{ProductID: "p1", Quantity: 0}}, "", models.PaymentCOD, Options{})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = engine.Quote(context.Background(), "u1",
		[]Line{{ProductID: "p1", Quantity: -3}}, "", models.PaymentCOD, Options{})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = engine.Quote(context.Background(), "u1",
		[]Line{{ProductID: "missing", Quantity: 1}}, "", models.PaymentCOD, Options{})
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestQuoteUnclaimedOrUsedCouponRejected(t *testing.T) {
	coupons := mapCoupons{"SPENT": {
		UserID:      "u1",
		Code:        "SPENT",
		RewardType:  models.RewardDiscount,
		RewardValue: models.RewardValue{Amount: 100},
		Status:      models.ClaimUsed,
	}}
	engine := NewEngine(mapCatalog{"p1": 500}, coupons)
	lines := []Line{{ProductID: "p1", Quantity: 1}}

	_, err := engine.Quote(context.Background(), "u1", lines, "NOPE", models.PaymentCOD, Options{})
	assert.ErrorIs(t, err, repository.ErrCouponNotFound)

	_, err = engine.Quote(context.Background(), "u1", lines, "SPENT", models.PaymentCOD, Options{})
	assert.ErrorIs(t, err, repository.ErrCouponNotFound)

	// Someone else's claim is invisible to this caller.
	_, err = engine.Quote(context.Background(), "u2", lines, "SPENT", models.PaymentCOD, Options{})
	assert.ErrorIs(t, err, repository.ErrCouponNotFound)
}
