package cart

import "github.com/google/uuid"

// ItemRequest is the payload for adding or updating a cart item. Quantity
// carries no validate tag: zero and negative values pass through, and updates
// can set a quantity to 0. The stock guard lives in the order workflow.
type ItemRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// RemoveRequest identifies the cart item to delete.
type RemoveRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}
