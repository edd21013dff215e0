package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/youssefalsaeed/order-management-system/pkg/db/models"
	pkgerrors "github.com/youssefalsaeed/order-management-system/pkg/errors"
)

type stubCartRepo struct {
	cart        *models.Cart
	findCartErr error
	item        *models.CartItem
	findItemErr error

	createCartErr error
	cartOnRetry   *models.Cart
	createTried   bool

	createdCart *models.Cart
	createdItem *models.CartItem
	updatedID   uuid.UUID
	updatedQty  int
	deletedID   uuid.UUID
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubCartRepo) FindCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.findCartErr != nil {
		return nil, s.findCartErr
	}
	if s.cart != nil {
		return s.cart, nil
	}
	if s.createTried && s.cartOnRetry != nil {
		return s.cartOnRetry, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) CreateCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	s.createTried = true
	if s.createCartErr != nil {
		return nil, s.createCartErr
	}
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	s.createdCart = cart
	return cart, nil
}

func (s *stubCartRepo) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	if s.findItemErr != nil {
		return nil, s.findItemErr
	}
	if s.item == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.item, nil
}

func (s *stubCartRepo) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.createdItem = item
	return item, nil
}

func (s *stubCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	s.updatedID = itemID
	s.updatedQty = quantity
	return nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	s.deletedID = itemID
	return nil
}

func TestAddToCartCreatesCartAndItem(t *testing.T) {
	repo := &stubCartRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	userID := uuid.New()
	productID := uuid.New()
	item, err := svc.AddToCart(context.Background(), userID, productID, 3)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if repo.createdCart == nil || repo.createdCart.UserID != userID {
		t.Fatalf("expected cart created for user %s", userID)
	}
	if repo.createdItem == nil {
		t.Fatal("expected item created")
	}
	if item.CartID != repo.createdCart.ID {
		t.Fatalf("item bound to cart %s, want %s", item.CartID, repo.createdCart.ID)
	}
	if item.ProductID != productID || item.Quantity != 3 {
		t.Fatalf("unexpected item: product %s qty %d", item.ProductID, item.Quantity)
	}
}

func TestAddToCartMergesQuantity(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()
	existing := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  2,
	}
	repo := &stubCartRepo{
		cart: &models.Cart{ID: cartID, UserID: uuid.New()},
		item: existing,
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	item, err := svc.AddToCart(context.Background(), repo.cart.UserID, productID, 3)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if item.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", item.Quantity)
	}
	if repo.updatedID != existing.ID || repo.updatedQty != 5 {
		t.Fatalf("expected quantity update to item %s, got %s qty %d", existing.ID, repo.updatedID, repo.updatedQty)
	}
	if repo.createdItem != nil {
		t.Fatal("expected no duplicate item row")
	}
	if repo.createdCart != nil {
		t.Fatal("expected no second cart row")
	}
}

func TestAddToCartRecoversFromConcurrentCartCreate(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	winner := &models.Cart{ID: uuid.New(), UserID: userID}
	repo := &stubCartRepo{
		createCartErr: errors.New(`duplicate key value violates unique constraint "idx_carts_user_id"`),
		cartOnRetry:   winner,
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	item, err := svc.AddToCart(context.Background(), userID, productID, 1)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if item.CartID != winner.ID {
		t.Fatalf("expected item on winning cart %s, got %s", winner.ID, item.CartID)
	}
}

func TestAddToCartRequiresIDs(t *testing.T) {
	svc, err := NewService(&stubCartRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.AddToCart(context.Background(), uuid.Nil, uuid.New(), 1); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for nil user id, got %v", err)
	}
	if _, err := svc.AddToCart(context.Background(), uuid.New(), uuid.Nil, 1); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for nil product id, got %v", err)
	}
}

func TestGetCartMissingReturnsNil(t *testing.T) {
	svc, err := NewService(&stubCartRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	record, err := svc.GetCart(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil cart, got %+v", record)
	}
}

func TestUpdateCartSetsAbsoluteQuantity(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()
	existing := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  7,
	}
	repo := &stubCartRepo{
		cart: &models.Cart{ID: cartID, UserID: uuid.New()},
		item: existing,
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	item, err := svc.UpdateCart(context.Background(), repo.cart.UserID, productID, 2)
	if err != nil {
		t.Fatalf("UpdateCart: %v", err)
	}

	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
	if repo.updatedID != existing.ID || repo.updatedQty != 2 {
		t.Fatalf("expected update to item %s qty 2, got %s qty %d", existing.ID, repo.updatedID, repo.updatedQty)
	}
}

func TestUpdateCartMissingItem(t *testing.T) {
	repo := &stubCartRepo{
		cart: &models.Cart{ID: uuid.New(), UserID: uuid.New()},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.UpdateCart(context.Background(), repo.cart.UserID, uuid.New(), 2)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if typed.Message() != "cart item not found" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if repo.updatedID != uuid.Nil {
		t.Fatal("no quantity write expected")
	}
}

func TestRemoveFromCartDeletesItem(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()
	existing := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  1,
	}
	repo := &stubCartRepo{
		cart: &models.Cart{ID: cartID, UserID: uuid.New()},
		item: existing,
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.RemoveFromCart(context.Background(), repo.cart.UserID, productID); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if repo.deletedID != existing.ID {
		t.Fatalf("expected delete of item %s, got %s", existing.ID, repo.deletedID)
	}
}

func TestRemoveFromCartMissingCart(t *testing.T) {
	svc, err := NewService(&stubCartRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	err = svc.RemoveFromCart(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
