package models

// Request bodies bound by the gin handlers.

type OrderLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

type CreateOrderRequest struct {
	AddressID       string             `json:"address_id" binding:"required"`
	Items           []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   PaymentMethod      `json:"payment_method" binding:"required,oneof=cod razorpay"`
	CouponCode      string             `json:"coupon_code"`
	RazorpayOrderID string             `json:"razorpay_order_id"`
}

type ConfirmPaymentRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=placed shipped delivered cancelled"`
}

type ClaimCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type VerifyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type RedeemCashbackRequest struct {
	UPIID string `json:"upi_id" binding:"required"`
}

type AddProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Images      []string `json:"images" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description" binding:"required"`
	NewPrice    int64    `json:"new_price" binding:"required,min=1"`
	OldPrice    int64    `json:"old_price" binding:"required,min=1"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type CartAddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity"`
}

type CartUpdateRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity"`
}

type AddressRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Pincode     string `json:"pincode" binding:"required"`
	Area        string `json:"area" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}
