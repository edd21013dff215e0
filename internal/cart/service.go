package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/youssefalsaeed/order-management-system/pkg/db"
	"github.com/youssefalsaeed/order-management-system/pkg/db/models"
	pkgerrors "github.com/youssefalsaeed/order-management-system/pkg/errors"
)

// Service owns cart mutations and reads. Quantity merge semantics live here:
// adding a product already in the cart increments its row instead of creating
// a second one.
type Service interface {
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpdateCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo}, nil
}

// AddToCart merges the quantity into an existing (cart, product) row or
// creates it. The cart row itself is created on first touch. Quantity is not
// validated against stock here; the decrement at order time is the guard.
func (s *service) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	record, err := s.repo.FindCartByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		record, err = s.repo.CreateCart(ctx, &models.Cart{UserID: userID})
		if err != nil {
			// a concurrent first add can win the carts.user_id unique index
			if db.IsUniqueViolation(err, "") {
				record, err = s.repo.FindCartByUserID(ctx, userID)
			}
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
			}
		}
	}

	existing, err := s.repo.FindItem(ctx, record.ID, productID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item quantity")
		}
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			CartID:    record.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		created, err := s.repo.CreateItem(ctx, item)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart item")
		}
		return created, nil

	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart item")
	}
}

// GetCart returns the cart with items and products, or nil when the user has
// no cart yet. Absence is not an error at this layer.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	record, err := s.repo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return record, nil
}

// UpdateCart sets the absolute quantity of an existing (cart, product) row.
func (s *service) UpdateCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	item, err := s.findExistingItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item quantity")
	}
	return item, nil
}

// RemoveFromCart deletes the (cart, product) row.
func (s *service) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	item, err := s.findExistingItem(ctx, userID, productID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting cart item")
	}
	return nil
}

func (s *service) findExistingItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	record, err := s.repo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	item, err := s.repo.FindItem(ctx, record.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart item")
	}
	return item, nil
}
