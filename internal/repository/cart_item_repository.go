package repository

import (
	"context"

	"sessioncart/internal/domain/model"
)

type CartItemRepository interface {
	Insert(ctx context.Context, item *model.CartItem) error
	FindByCartAndID(ctx context.Context, cartID int64, cartItemID int64) (model.CartItem, error)
	// quantityとmetadataだけ更新
	Update(ctx context.Context, item *model.CartItem) error
	// 無くてもエラーにしない
	DeleteByCartAndID(ctx context.Context, cartID int64, cartItemID int64) error
	DeleteByCartID(ctx context.Context, cartID int64) error
	// 明細をまとめて別カートへ付け替える
	MoveToCart(ctx context.Context, fromCartID int64, toCartID int64) (int64, error)
	// 商品の現在価格をjoinした明細
	ListLinesByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error)
}
