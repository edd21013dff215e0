package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/youssefalsaeed/order-management-system/pkg/db/models"
	"github.com/youssefalsaeed/order-management-system/pkg/enums"
)

// Repository defines persistence operations for the order workflow. It reads
// and clears cart rows directly rather than going through the cart service;
// both operate on the same tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price decimal.Decimal) error
	FindCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	DeleteCartItems(ctx context.Context, cartID uuid.UUID) error
	FindProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (int64, error)
}
