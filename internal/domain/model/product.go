package model

import "github.com/shopspring/decimal"

// 商品（このサービスからは読み取りのみ）
type Product struct {
	ID        int64           `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Inventory int64           `gorm:"not null;default:0" json:"inventory"`
}

func (Product) TableName() string { return "product" }
