package repository

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrAddressNotFound = errors.New("address not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrReviewNotFound  = errors.New("review not found")

	ErrCouponExists    = errors.New("coupon already exists")
	ErrAlreadyClaimed  = errors.New("coupon already claimed")
	ErrAlreadyReviewed = errors.New("user already reviewed this product")

	ErrInsufficientPoints    = errors.New("not enough points")
	ErrDuplicateGatewayOrder = errors.New("duplicate gateway order")
)
