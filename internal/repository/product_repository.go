package repository

import (
	"context"

	"sessioncart/internal/domain/model"
)

// 価格と在庫の参照だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, productID int64) (model.Product, error)
}
