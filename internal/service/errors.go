package service

import "errors"

var (
	// ErrProductNotFound is returned when a product id does not resolve
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound is returned when a category id does not resolve
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryExists is returned when a category slug is already taken
	ErrCategoryExists = errors.New("category already exists")

	// ErrOrderNotFound is returned when an order id does not resolve
	ErrOrderNotFound = errors.New("order not found")

	// ErrCouponNotFound is returned when a coupon cannot be found
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponExists is returned when attempting to create a coupon whose code is taken
	ErrCouponExists = errors.New("coupon already exists")

	// ErrReviewNotFound is returned when a review id does not resolve
	ErrReviewNotFound = errors.New("review not found")

	// ErrOfferNotFound is returned when an offer id does not resolve
	ErrOfferNotFound = errors.New("offer not found")

	// ErrFeedbackNotFound is returned when a feedback id does not resolve
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrInsufficientStock is returned when a line item asks for more units than are in stock
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidCoupon is returned when a coupon is missing, inactive,
	// outside its validity window, or its usage limit is reached
	ErrInvalidCoupon = errors.New("coupon is not valid")

	// ErrMinimumPurchaseNotMet is returned when the subtotal is below the coupon's minimum
	ErrMinimumPurchaseNotMet = errors.New("minimum purchase amount not met")

	// ErrInvalidStatusTransition is returned for disallowed order status transitions
	ErrInvalidStatusTransition = errors.New("invalid order status transition")

	// ErrOrderNumberConflict is returned when order number generation keeps
	// colliding with the unique index after retrying
	ErrOrderNumberConflict = errors.New("order number conflict")

	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")
)
