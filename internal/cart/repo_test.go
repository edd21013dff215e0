package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/youssefalsaeed/order-management-system/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "test product",
		Price:       decimal.NewFromFloat(price),
		Stock:       stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newCartItem(t *testing.T, db *gorm.DB, cartID, productID uuid.UUID, qty int, created time.Time) *models.CartItem {
	t.Helper()

	item := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestRepositoryFindCartByUserID(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	record, err := repo.CreateCart(context.Background(), &models.Cart{UserID: userID})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, record.ID)

	jacket := newProduct(t, db, "Jacket "+uuid.NewString(), 19.99, 100)
	boots := newProduct(t, db, "Boots "+uuid.NewString(), 15.99, 100)

	now := time.Now().UTC()
	newCartItem(t, db, record.ID, boots.ID, 1, now)
	newCartItem(t, db, record.ID, jacket.ID, 2, now.Add(-time.Minute))

	found, err := repo.FindCartByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)

	assert.Equal(t, jacket.ID, found.Items[0].ProductID)
	assert.Equal(t, boots.ID, found.Items[1].ProductID)
	require.NotNil(t, found.Items[0].Product)
	assert.True(t, found.Items[0].Product.Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestRepositoryFindCartByUserIDMissing(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindCartByUserID(context.Background(), uuid.New())
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryFindItem(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	record, err := repo.CreateCart(context.Background(), &models.Cart{UserID: uuid.New()})
	require.NoError(t, err)

	product := newProduct(t, db, "Sweater "+uuid.NewString(), 29.99, 50)
	created, err := repo.CreateItem(context.Background(), &models.CartItem{
		CartID:    record.ID,
		ProductID: product.ID,
		Quantity:  4,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindItem(context.Background(), record.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, 4, found.Quantity)

	_, err = repo.FindItem(context.Background(), record.ID, uuid.New())
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryUpdateItemQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	record, err := repo.CreateCart(context.Background(), &models.Cart{UserID: uuid.New()})
	require.NoError(t, err)

	product := newProduct(t, db, "Scarf "+uuid.NewString(), 9.99, 30)
	item := newCartItem(t, db, record.ID, product.ID, 1, time.Now().UTC())

	require.NoError(t, repo.UpdateItemQuantity(context.Background(), item.ID, 6))

	found, err := repo.FindItem(context.Background(), record.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, found.Quantity)
}

func TestRepositoryDeleteItemLeavesOthers(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	record, err := repo.CreateCart(context.Background(), &models.Cart{UserID: uuid.New()})
	require.NoError(t, err)

	keepProduct := newProduct(t, db, "Keep "+uuid.NewString(), 5.99, 10)
	dropProduct := newProduct(t, db, "Drop "+uuid.NewString(), 6.99, 10)

	now := time.Now().UTC()
	keep := newCartItem(t, db, record.ID, keepProduct.ID, 1, now)
	drop := newCartItem(t, db, record.ID, dropProduct.ID, 2, now)

	require.NoError(t, repo.DeleteItem(context.Background(), drop.ID))

	_, err = repo.FindItem(context.Background(), record.ID, dropProduct.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	found, err := repo.FindItem(context.Background(), record.ID, keepProduct.ID)
	require.NoError(t, err)
	assert.Equal(t, keep.ID, found.ID)
}
