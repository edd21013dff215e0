package orders

import "github.com/google/uuid"

// CreateRequest identifies the user whose cart is converted into an order.
type CreateRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// StatusRequest carries the target status for a transition.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CouponRequest carries the coupon code applied to an order.
type CouponRequest struct {
	CouponCode string `json:"coupon_code" validate:"required"`
}
