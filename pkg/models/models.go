package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// All monetary amounts are stored in paise (integer minor units).

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Role         Role               `json:"role" bson:"role"`
	SpoonPoints  int64              `json:"spoon_points" bson:"spoon_points"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SeqID       int64              `json:"seq_id" bson:"seq_id"`
	Name        string             `json:"name" bson:"name"`
	Images      []string           `json:"images" bson:"images"`
	Category    string             `json:"category" bson:"category"`
	Description string             `json:"description" bson:"description"`
	NewPrice    int64              `json:"new_price" bson:"new_price"`
	OldPrice    int64              `json:"old_price" bson:"old_price"`
	Available   bool               `json:"available" bson:"available"`
	Reviews     []Review           `json:"reviews" bson:"reviews"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int64  `json:"quantity" bson:"quantity"`
}

type Cart struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID string             `json:"user_id" bson:"user_id"`
	Items  []CartItem         `json:"items" bson:"items"`
}

type Address struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	FullName    string             `json:"full_name" bson:"full_name"`
	PhoneNumber string             `json:"phone_number" bson:"phone_number"`
	Pincode     string             `json:"pincode" bson:"pincode"`
	Area        string             `json:"area" bson:"area"`
	City        string             `json:"city" bson:"city"`
	State       string             `json:"state" bson:"state"`
}

type RewardType string

const (
	RewardDiscount RewardType = "discount"
	RewardPoints   RewardType = "points"
	RewardSample   RewardType = "sample"
	RewardRecipe   RewardType = "recipe"
	RewardCashback RewardType = "cashback"
)

// RewardValue is a tagged value resolved once at coupon creation. Amount holds
// paise for discount/cashback rewards and a point count for points rewards;
// Ref holds the sample or recipe identifier.
type RewardValue struct {
	Amount int64  `json:"amount,omitempty" bson:"amount,omitempty"`
	Ref    string `json:"ref,omitempty" bson:"ref,omitempty"`
}

type Coupon struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code        string             `json:"code" bson:"code"`
	RewardType  RewardType         `json:"reward_type" bson:"reward_type"`
	RewardValue RewardValue        `json:"reward_value" bson:"reward_value"`
	Claimed     bool               `json:"claimed" bson:"claimed"`
	ClaimedBy   string             `json:"claimed_by,omitempty" bson:"claimed_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

type ClaimStatus string

const (
	ClaimNotUsed ClaimStatus = "NotUsed"
	ClaimUsed    ClaimStatus = "Used"
)

type ClaimedCoupon struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	Code        string             `json:"code" bson:"code"`
	RewardType  RewardType         `json:"reward_type" bson:"reward_type"`
	RewardValue RewardValue        `json:"reward_value" bson:"reward_value"`
	Status      ClaimStatus        `json:"status" bson:"status"`
	ClaimedAt   time.Time          `json:"claimed_at" bson:"claimed_at"`
}

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "cod"
	PaymentRazorpay PaymentMethod = "razorpay"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int64  `json:"quantity" bson:"quantity"`
	// PriceAtPurchase is frozen from Product.NewPrice at order creation and
	// never recomputed afterwards.
	PriceAtPurchase int64 `json:"price_at_purchase" bson:"price_at_purchase"`
}

// CouponSnapshot is embedded on the order for record keeping; the discount it
// describes has already been applied to TotalAmount.
type CouponSnapshot struct {
	Code        string      `json:"code" bson:"code"`
	RewardType  RewardType  `json:"reward_type" bson:"reward_type"`
	RewardValue RewardValue `json:"reward_value" bson:"reward_value"`
}

type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"`
	AddressID     string             `json:"address_id" bson:"address_id"`
	Items         []OrderItem        `json:"items" bson:"items"`
	CODFee        int64              `json:"cod_fee" bson:"cod_fee"`
	TotalAmount   int64              `json:"total_amount" bson:"total_amount"`
	PaymentMethod PaymentMethod      `json:"payment_method" bson:"payment_method"`
	PaymentStatus PaymentStatus      `json:"payment_status" bson:"payment_status"`
	OrderStatus   OrderStatus        `json:"order_status" bson:"order_status"`
	Coupon        *CouponSnapshot    `json:"coupon,omitempty" bson:"coupon,omitempty"`

	RazorpayOrderID   string `json:"razorpay_order_id,omitempty" bson:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty" bson:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"razorpay_signature,omitempty" bson:"razorpay_signature,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type CashbackStatus string

const (
	CashbackPending  CashbackStatus = "Pending"
	CashbackApproved CashbackStatus = "Approved"
	CashbackRejected CashbackStatus = "Rejected"
)

type CashbackRequest struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	UPIID       string             `json:"upi_id" bson:"upi_id"`
	Amount      int64              `json:"amount" bson:"amount"`
	Status      CashbackStatus     `json:"status" bson:"status"`
	RequestedAt time.Time          `json:"requested_at" bson:"requested_at"`
}

type Contact struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
