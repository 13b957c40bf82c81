package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sessioncart/internal/domain/model"
	"sessioncart/internal/infra/db"
	repo "sessioncart/internal/repository"
)

// =====================
// helper
// =====================

func newCart(t *testing.T, r *CartGormRepository, sessionID string, userID *int64) model.Cart {
	t.Helper()
	now := time.Now()
	c := model.Cart{
		UserID:    userID,
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(model.CartTTL),
	}
	require.NoError(t, r.Create(context.Background(), &c))
	return c
}

func newProduct(t *testing.T, gormDB *gorm.DB, id int64, price string, inventory int64) {
	t.Helper()
	db.SeedProduct(t, gormDB, model.Product{ID: id, Price: decimal.RequireFromString(price), Inventory: inventory})
}

func newItem(t *testing.T, r *CartGormRepository, cartID, productID, qty int64, price string) model.CartItem {
	t.Helper()
	it := model.CartItem{
		CartID:      cartID,
		ProductID:   productID,
		Quantity:    qty,
		PriceAtTime: decimal.RequireFromString(price),
	}
	require.NoError(t, r.Insert(context.Background(), &it))
	return it
}

// =====================
// cart
// =====================

func TestCartGorm_FindGuestBySessionID_IgnoresUserCarts(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(db.OpenTest(t))

	newCart(t, r, "s1", model.Int64Ptr(7))

	_, err := r.FindGuestBySessionID(ctx, "s1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	guest := newCart(t, r, "s1", nil)
	got, err := r.FindGuestBySessionID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, guest.ID, got.ID)
	assert.True(t, got.IsGuest())
}

func TestCartGorm_FindByUserID(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(db.OpenTest(t))

	_, err := r.FindByUserID(ctx, 7)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	own := newCart(t, r, "s-user", model.Int64Ptr(7))
	got, err := r.FindByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, own.ID, got.ID)
}

func TestCartGorm_AssignUser(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(db.OpenTest(t))
	guest := newCart(t, r, "s1", nil)

	require.NoError(t, r.AssignUser(ctx, guest.ID, 42))

	got, err := r.FindByID(ctx, guest.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, int64(42), *got.UserID)

	assert.ErrorIs(t, r.AssignUser(ctx, 9999, 42), repo.ErrNotFound)
}

func TestCartGorm_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(db.OpenTest(t))
	c := newCart(t, r, "s1", nil)

	require.NoError(t, r.Delete(ctx, c.ID))
	require.NoError(t, r.Delete(ctx, c.ID))

	_, err := r.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

// =====================
// cart_item
// =====================

func TestCartGorm_ItemUpdate_ScopedToCart(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(db.OpenTest(t))
	c1 := newCart(t, r, "s1", nil)
	c2 := newCart(t, r, "s2", nil)
	it := newItem(t, r, c1.ID, 1, 2, "10.00")

	_, err := r.FindByCartAndID(ctx, c2.ID, it.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	it.Quantity = 5
	it.Metadata = model.Metadata{"gift": true}
	require.NoError(t, r.Update(ctx, &it))

	got, err := r.FindByCartAndID(ctx, c1.ID, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, true, got.Metadata["gift"])
	assert.True(t, decimal.RequireFromString("10.00").Equal(got.PriceAtTime))

	moved := it
	moved.CartID = c2.ID
	assert.ErrorIs(t, r.Update(ctx, &moved), repo.ErrNotFound)
}

func TestCartGorm_ItemDeletesAreIdempotent(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(db.OpenTest(t))
	c := newCart(t, r, "s1", nil)
	it := newItem(t, r, c.ID, 1, 1, "1.00")
	newItem(t, r, c.ID, 2, 1, "1.00")

	require.NoError(t, r.DeleteByCartAndID(ctx, c.ID, it.ID))
	require.NoError(t, r.DeleteByCartAndID(ctx, c.ID, it.ID))

	require.NoError(t, r.DeleteByCartID(ctx, c.ID))
	require.NoError(t, r.DeleteByCartID(ctx, c.ID))

	lines, err := r.ListLinesByCartID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartGorm_MoveToCart(t *testing.T) {
	ctx := context.Background()
	gormDB := db.OpenTest(t)
	r := NewCartGormRepository(gormDB)
	newProduct(t, gormDB, 1, "10.00", 10)
	newProduct(t, gormDB, 2, "5.00", 10)

	from := newCart(t, r, "guest", nil)
	to := newCart(t, r, "user", model.Int64Ptr(3))
	newItem(t, r, to.ID, 1, 1, "10.00")
	newItem(t, r, from.ID, 1, 2, "10.00")
	newItem(t, r, from.ID, 2, 1, "5.00")

	n, err := r.MoveToCart(ctx, from.ID, to.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	lines, err := r.ListLinesByCartID(ctx, to.ID)
	require.NoError(t, err)
	// 同じ商品でも数量はまとめない
	assert.Len(t, lines, 3)

	left, err := r.ListLinesByCartID(ctx, from.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestCartGorm_ListLines_UsesCurrentPrice(t *testing.T) {
	ctx := context.Background()
	gormDB := db.OpenTest(t)
	r := NewCartGormRepository(gormDB)
	newProduct(t, gormDB, 1, "10.00", 10)

	c := newCart(t, r, "s1", nil)
	newItem(t, r, c.ID, 1, 2, "10.00")

	// 値上げ後は現在価格で返す
	newProduct(t, gormDB, 1, "12.50", 10)

	lines, err := r.ListLinesByCartID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, decimal.RequireFromString("12.50").Equal(lines[0].CurrentPrice))
	assert.True(t, decimal.RequireFromString("25.00").Equal(lines[0].LineTotal()))
}

func TestCartGorm_ListLines_SkipsMissingProduct(t *testing.T) {
	ctx := context.Background()
	gormDB := db.OpenTest(t)
	r := NewCartGormRepository(gormDB)
	newProduct(t, gormDB, 1, "3.00", 10)

	c := newCart(t, r, "s1", nil)
	newItem(t, r, c.ID, 1, 1, "3.00")
	newItem(t, r, c.ID, 99, 1, "1.00")

	lines, err := r.ListLinesByCartID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ProductID)
}

// =====================
// product
// =====================

func TestProductGorm_FindByID(t *testing.T) {
	ctx := context.Background()
	gormDB := db.OpenTest(t)
	products := NewProductGormRepository(gormDB)
	newProduct(t, gormDB, 1, "3.00", 8)

	p, err := products.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.Inventory)
	assert.True(t, decimal.RequireFromString("3.00").Equal(p.Price))

	_, err = products.FindByID(ctx, 2)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

// =====================
// tx
// =====================

func TestTxManagerGorm_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	gormDB := db.OpenTest(t)
	r := NewCartGormRepository(gormDB)
	guest := newCart(t, r, "s1", nil)

	boom := errors.New("boom")
	err := NewTxManagerGorm(gormDB).WithinTx(ctx, func(tx repo.TxRepos) error {
		if err := tx.Carts().AssignUser(ctx, guest.ID, 5); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := r.FindByID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
}
