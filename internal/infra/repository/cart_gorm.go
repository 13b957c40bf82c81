package repository

import (
	"context"

	"sessioncart/internal/domain/model"
	repo "sessioncart/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartとcart_itemの両方の約束を満たす
type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カートを作成
func (r *CartGormRepository) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *CartGormRepository) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		First(&cart).Error

	if err != nil {
		return model.Cart{}, translate(err)
	}
	return cart, nil
}

// セッションのゲストカートを取得（マージ中は行ロック）
func (r *CartGormRepository) FindGuestBySessionID(ctx context.Context, sessionID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_id = ? AND user_id IS NULL", sessionID).
		Order("cart_id asc").
		First(&cart).Error

	if err != nil {
		return model.Cart{}, translate(err)
	}
	return cart, nil
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("cart_id asc").
		First(&cart).Error

	if err != nil {
		return model.Cart{}, translate(err)
	}
	return cart, nil
}

// ゲストカートの持ち主をユーザーにする
func (r *CartGormRepository) AssignUser(ctx context.Context, cartID int64, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("cart_id = ?", cartID).
		Update("user_id", userID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カート行を削除
func (r *CartGormRepository) Delete(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.Cart{}).Error
}

// 明細を追加
func (r *CartGormRepository) Insert(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// 明細を取得（カートIDも一致すること）
func (r *CartGormRepository) FindByCartAndID(ctx context.Context, cartID int64, cartItemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND cart_item_id = ?", cartID, cartItemID).
		First(&item).Error

	if err != nil {
		return model.CartItem{}, translate(err)
	}
	return item, nil
}

// 数量とmetadataを更新
func (r *CartGormRepository) Update(ctx context.Context, item *model.CartItem) error {
	res := r.db.WithContext(ctx).
		Model(item).
		Where("cart_id = ?", item.CartID).
		Select("quantity", "metadata").
		Updates(item)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) DeleteByCartAndID(ctx context.Context, cartID int64, cartItemID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND cart_item_id = ?", cartID, cartItemID).
		Delete(&model.CartItem{}).Error
}

// 指定カートの明細を全削除
func (r *CartGormRepository) DeleteByCartID(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}

// 明細を一括で付け替え、件数を返す
func (r *CartGormRepository) MoveToCart(ctx context.Context, fromCartID int64, toCartID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("cart_id = ?", fromCartID).
		Update("cart_id", toCartID)

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// 明細に商品の現在価格をjoinして返す（商品が消えた明細は出ない）
func (r *CartGormRepository) ListLinesByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	lines := []model.CartLine{}

	err := r.db.WithContext(ctx).
		Table("cart_item AS ci").
		Select("ci.cart_item_id, ci.product_id, ci.variant_id, ci.quantity, p.price AS current_price, ci.metadata").
		Joins("JOIN product p ON p.product_id = ci.product_id").
		Where("ci.cart_id = ?", cartID).
		Order("ci.cart_item_id asc").
		Scan(&lines).Error

	if err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}
