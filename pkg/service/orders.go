package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/events"
	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/payment"
	"github.com/spoonful/spoonful-backend/pkg/pricing"
)

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error
	ConfirmPaid(ctx context.Context, orderID, gatewayOrderID, paymentID, signature string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

// Ledger is the slice of the reward ledger the order lifecycle needs.
type Ledger interface {
	MarkUsed(ctx context.Context, code, userID string) error
}

// CartStore empties the buyer's cart once the order is committed.
type CartStore interface {
	Clear(ctx context.Context, userID string) error
}

type CreateOrderInput struct {
	AddressID     string
	Items         []pricing.Line
	PaymentMethod models.PaymentMethod
	CouponCode    string
	// GatewayOrderID is a client-supplied correlation id for gateway orders
	// opened out of band. Reusing one that already exists is rejected.
	GatewayOrderID string
}

type ConfirmPaymentInput struct {
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
}

// OrderService owns the order lifecycle from creation through payment
// confirmation.
type OrderService struct {
	orders        OrderStore
	engine        *pricing.Engine
	gateway       payment.Gateway
	ledger        Ledger
	carts         CartStore
	publisher     *events.Publisher
	opts          pricing.Options
	gatewaySecret string
}

func NewOrderService(orders OrderStore, engine *pricing.Engine, gateway payment.Gateway, ledger Ledger, carts CartStore, publisher *events.Publisher, opts pricing.Options, gatewaySecret string) *OrderService {
	return &OrderService{
		orders:        orders,
		engine:        engine,
		gateway:       gateway,
		ledger:        ledger,
		carts:         carts,
		publisher:     publisher,
		opts:          opts,
		gatewaySecret: gatewaySecret,
	}
}

// Create recomputes the authoritative total server side for every payment
// method, persists a pending order, and for gateway payments opens a remote
// payment intent tied to it. COD orders mark their coupon used immediately;
// there is no later confirmation event for them.
func (s *OrderService) Create(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	if userID == "" || in.AddressID == "" || len(in.Items) == 0 {
		return nil, ErrValidation
	}

	quote, err := s.engine.Quote(ctx, userID, in.Items, in.CouponCode, in.PaymentMethod, s.opts)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		AddressID:     in.AddressID,
		Items:         quote.Items,
		CODFee:        quote.CODFee,
		TotalAmount:   quote.TotalAmount,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		OrderStatus:   models.OrderPlaced,
		Coupon:        quote.Coupon,
	}
	if in.PaymentMethod == models.PaymentRazorpay && in.GatewayOrderID != "" {
		order.RazorpayOrderID = in.GatewayOrderID
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if in.PaymentMethod == models.PaymentRazorpay && order.RazorpayOrderID == "" {
		receipt := "receipt_order_" + order.ID.Hex()
		gatewayOrderID, err := s.gateway.CreateIntent(ctx, order.TotalAmount, "INR", receipt)
		if err != nil {
			// The order stays pending without a gateway id; the client may
			// retry through a fresh checkout.
			return nil, err
		}
		if err := s.orders.SetGatewayOrderID(ctx, order.ID.Hex(), gatewayOrderID); err != nil {
			return nil, err
		}
		order.RazorpayOrderID = gatewayOrderID
	}

	if in.PaymentMethod == models.PaymentCOD && order.Coupon != nil {
		if err := s.ledger.MarkUsed(ctx, order.Coupon.Code, userID); err != nil {
			return nil, fmt.Errorf("failed to mark coupon used: %w", err)
		}
	}

	// Best effort; the order is already committed and a stale cart is only a
	// cosmetic leftover.
	if s.carts != nil {
		if err := s.carts.Clear(ctx, userID); err != nil {
			logrus.WithField("user_id", userID).WithError(err).Warn("failed to clear cart after order")
		}
	}

	s.publisher.OrderCreated(ctx, order)

	logrus.WithFields(logrus.Fields{
		"order_id":       order.ID.Hex(),
		"user_id":        userID,
		"payment_method": in.PaymentMethod,
		"total_amount":   order.TotalAmount,
	}).Info("order created")

	return order, nil
}

// ConfirmPayment validates the gateway signature before touching any state,
// then marks the order paid and the coupon used. Both updates are idempotent;
// the gateway may deliver the confirmation more than once.
func (s *OrderService) ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (*models.Order, error) {
	if !payment.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.GatewaySignature, s.gatewaySecret) {
		logrus.WithFields(logrus.Fields{
			"order_id":         in.OrderID,
			"gateway_order_id": in.GatewayOrderID,
		}).Warn("payment confirmation with invalid signature")
		return nil, ErrInvalidSignature
	}

	order, err := s.orders.ConfirmPaid(ctx, in.OrderID, in.GatewayOrderID, in.GatewayPaymentID, in.GatewaySignature)
	if err != nil {
		return nil, err
	}

	if order.Coupon != nil {
		if err := s.ledger.MarkUsed(ctx, order.Coupon.Code, order.UserID); err != nil {
			return nil, fmt.Errorf("failed to mark coupon used: %w", err)
		}
	}

	s.publisher.OrderPaid(ctx, order)

	logrus.WithFields(logrus.Fields{
		"order_id":         order.ID.Hex(),
		"gateway_order_id": in.GatewayOrderID,
	}).Info("payment confirmed")

	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus is the fulfillment write: placed -> shipped -> delivered, or
// cancelled.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	return s.orders.UpdateStatus(ctx, orderID, status)
}
