package model

import "github.com/shopspring/decimal"

// 任意のキー/値（中身は解釈しない）
type Metadata map[string]any

// カートの明細
// price_at_timeは追加時点の価格。あとから再計算しない。
type CartItem struct {
	ID          int64           `gorm:"column:cart_item_id;primaryKey;autoIncrement" json:"cart_item_id"`
	CartID      int64           `gorm:"not null;index" json:"cart_id"`
	ProductID   int64           `gorm:"not null;index" json:"product_id"`
	VariantID   *int64          `json:"variant_id"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	PriceAtTime decimal.Decimal `gorm:"column:price_at_time;type:numeric(12,2);not null" json:"price_at_time"`
	Metadata    Metadata        `gorm:"type:jsonb;serializer:json" json:"metadata"`
}

func (CartItem) TableName() string { return "cart_item" }

// 明細＋商品の現在価格（表示・合計計算用）
type CartLine struct {
	CartItemID   int64           `gorm:"column:cart_item_id"`
	ProductID    int64           `gorm:"column:product_id"`
	VariantID    *int64          `gorm:"column:variant_id"`
	Quantity     int64           `gorm:"column:quantity"`
	CurrentPrice decimal.Decimal `gorm:"column:current_price"`
	Metadata     Metadata        `gorm:"column:metadata;serializer:json"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.CurrentPrice.Mul(decimal.NewFromInt(l.Quantity))
}
