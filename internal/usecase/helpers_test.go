package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sessioncart/internal/domain/model"
	"sessioncart/internal/infra/db"
	infraRepo "sessioncart/internal/infra/repository"
	"sessioncart/internal/usecase"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	carts   *infraRepo.CartGormRepository
	cartUC  *usecase.CartUsecase
	mergeUC *usecase.MergeUsecase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gormDB := db.OpenTest(t)
	carts := infraRepo.NewCartGormRepository(gormDB)
	products := infraRepo.NewProductGormRepository(gormDB)

	return fixture{
		db:      gormDB,
		carts:   carts,
		cartUC:  usecase.NewCartUsecase(carts, carts, products, fixedClock{testNow}, zerolog.Nop()),
		mergeUC: usecase.NewMergeUsecase(infraRepo.NewTxManagerGorm(gormDB), zerolog.Nop()),
	}
}

func (f fixture) product(t *testing.T, id int64, price string, inventory int64) {
	t.Helper()
	db.SeedProduct(t, f.db, model.Product{ID: id, Price: decimal.RequireFromString(price), Inventory: inventory})
}

func (f fixture) guestCart(t *testing.T, sessionID string) int64 {
	t.Helper()
	out, err := f.cartUC.CreateCart(context.Background(), model.Session{ID: sessionID})
	require.NoError(t, err)
	return out.CartID
}

func (f fixture) userCart(t *testing.T, sessionID string, userID int64) int64 {
	t.Helper()
	out, err := f.cartUC.CreateCart(context.Background(), model.Session{ID: sessionID, UserID: model.Int64Ptr(userID)})
	require.NoError(t, err)
	return out.CartID
}

func (f fixture) add(t *testing.T, cartID, productID, qty int64) usecase.CartItemResponse {
	t.Helper()
	out, err := f.cartUC.AddItem(context.Background(), cartID, usecase.AddItemInput{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return out
}

func (f fixture) itemCount(t *testing.T, cartID int64) int {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.CartItem{}).Where("cart_id = ?", cartID).Count(&n).Error)
	return int(n)
}
