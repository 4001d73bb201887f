// Package pricing computes the authoritative total for an order. It is purely
// computational: it reads the catalog and the caller's claimed coupons but
// never mutates either.
package pricing

import (
	"context"
	"errors"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// Catalog resolves a product id to its current state. The product's NewPrice
// is the only price source; client-submitted prices are never trusted.
type Catalog interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// ClaimedCoupons resolves a caller's claimed, not-yet-used coupon.
type ClaimedCoupons interface {
	GetClaimed(ctx context.Context, code, userID string, onlyNotUsed bool) (*models.ClaimedCoupon, error)
}

type Line struct {
	ProductID string
	Quantity  int64
}

type Options struct {
	// CODFee is the flat cash-on-delivery fee in paise (0 for other methods).
	CODFee int64
	// CODFeeAfterDiscount adds the fee after the coupon discount when true;
	// otherwise the fee is part of the discount base.
	CODFeeAfterDiscount bool
}

type Quote struct {
	TotalAmount int64
	CODFee      int64
	Items       []models.OrderItem
	Coupon      *models.CouponSnapshot
}

type Engine struct {
	catalog Catalog
	coupons ClaimedCoupons
}

func NewEngine(catalog Catalog, coupons ClaimedCoupons) *Engine {
	return &Engine{catalog: catalog, coupons: coupons}
}

// Quote freezes per-line prices from the catalog and computes the total in
// integer paise. A discount coupon subtracts its amount, clamped at zero;
// other reward types leave the total alone (their rewards are credited after
// payment). Marking the coupon used is the order state machine's job.
func (e *Engine) Quote(ctx context.Context, userID string, lines []Line, couponCode string, method models.PaymentMethod, opts Options) (*Quote, error) {
	var sum int64
	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		product, err := e.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.NewPrice,
		})
		sum += product.NewPrice * line.Quantity
	}

	var codFee int64
	if method == models.PaymentCOD {
		codFee = opts.CODFee
	}

	var snapshot *models.CouponSnapshot
	var discount int64
	if couponCode != "" {
		claimed, err := e.coupons.GetClaimed(ctx, couponCode, userID, true)
		if err != nil {
			return nil, err
		}
		snapshot = &models.CouponSnapshot{
			Code:        claimed.Code,
			RewardType:  claimed.RewardType,
			RewardValue: claimed.RewardValue,
		}
		if claimed.RewardType == models.RewardDiscount {
			discount = claimed.RewardValue.Amount
		}
	}

	var total int64
	if opts.CODFeeAfterDiscount {
		total = clamp(sum-discount) + codFee
	} else {
		total = clamp(sum + codFee - discount)
	}

	return &Quote{
		TotalAmount: total,
		CODFee:      codFee,
		Items:       items,
		Coupon:      snapshot,
	}, nil
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
