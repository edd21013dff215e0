package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/youssefalsaeed/order-management-system/internal/coupons"
	"github.com/youssefalsaeed/order-management-system/pkg/db/models"
	"github.com/youssefalsaeed/order-management-system/pkg/enums"
	pkgerrors "github.com/youssefalsaeed/order-management-system/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service converts carts into orders and manages them afterwards.
type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
	ApplyCoupon(ctx context.Context, orderID uuid.UUID, code string) (decimal.Decimal, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	coupons coupons.Validator
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, validator coupons.Validator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if validator == nil {
		return nil, fmt.Errorf("coupon validator required")
	}
	return &service{repo: repo, tx: tx, coupons: validator}, nil
}

// CreateOrder converts the user's cart into a pending order: one order item
// per cart item with the product's price copied at this instant, stock
// decremented per item, cart emptied. All writes share one transaction so a
// failed decrement leaves no half-created order behind.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	record, err := s.repo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	items := make([]models.OrderItem, 0, len(record.Items))
	for _, cartItem := range record.Items {
		if cartItem.Product == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product with ID %s not found", cartItem.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			Price:     cartItem.Product.Price,
		})
	}

	order := &models.Order{
		UserID: userID,
		Status: enums.OrderStatusPending,
		Items:  items,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}

		for _, cartItem := range record.Items {
			affected, err := repo.DecrementStock(ctx, cartItem.ProductID, cartItem.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrementing stock")
			}
			if affected == 0 {
				if _, err := repo.FindProduct(ctx, cartItem.ProductID); errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Newf(pkgerrors.CodeNotFound, "product with ID %s not found", cartItem.ProductID)
				}
				return pkgerrors.Newf(pkgerrors.CodeStateConflict, "insufficient stock for product %s", cartItem.ProductID)
			}
		}

		if err := repo.DeleteCartItems(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrderByID returns the order with items and products, or nil when it does
// not exist.
func (s *service) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	record, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return record, nil
}

// FindOrdersByUserID returns every order placed by the user. The slice is
// empty, never nil-error, when there are none.
func (s *service) FindOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	rows, err := s.repo.FindOrdersByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	if rows == nil {
		rows = []models.Order{}
	}
	return rows, nil
}

// UpdateOrderStatus moves the order along the status graph. Transitions not
// present in the table are rejected rather than written through.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", status)
	}

	record, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "order with ID %s not found", orderID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	if !record.Status.CanTransitionTo(status) {
		return nil, pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot transition order from %s to %s", record.Status, status)
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}

	record.Status = status
	return record, nil
}

// ApplyCoupon rewrites every item's snapshot price to price*(1-d), where d is
// the fraction resolved for the code. Item updates are issued concurrently
// with a join barrier. Applying the same coupon again compounds the discount;
// there is deliberately no applied-coupon guard.
func (s *service) ApplyCoupon(ctx context.Context, orderID uuid.UUID, code string) (decimal.Decimal, error) {
	if orderID == uuid.Nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	discount, err := s.coupons.Validate(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}

	record, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, pkgerrors.Newf(pkgerrors.CodeNotFound, "order with ID %s not found", orderID)
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	for _, item := range record.Items {
		newPrice := item.Price.Sub(item.Price.Mul(discount)).Round(2)
		itemID := item.ID
		grp.Go(func() error {
			if err := s.repo.UpdateItemPrice(grpCtx, itemID, newPrice); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order item price")
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return decimal.Zero, err
	}

	return discount, nil
}
