package repository

import (
	"context"

	"sessioncart/internal/domain/model"
)

type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	FindByID(ctx context.Context, cartID int64) (model.Cart, error)
	// セッションのゲストカート（user_idがNULL）
	FindGuestBySessionID(ctx context.Context, sessionID string) (model.Cart, error)
	// ユーザーが持っているカート
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	AssignUser(ctx context.Context, cartID int64, userID int64) error
	Delete(ctx context.Context, cartID int64) error
}
