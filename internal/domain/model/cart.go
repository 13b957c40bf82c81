package model

import "time"

// カートの有効期限（作成から1日）
const CartTTL = 24 * time.Hour

// UserIDがnilならゲストカート
type Cart struct {
	ID        int64     `gorm:"column:cart_id;primaryKey;autoIncrement" json:"cart_id"`
	UserID    *int64    `gorm:"index" json:"user_id"`
	SessionID string    `gorm:"type:varchar(255);not null;index" json:"session_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (Cart) TableName() string { return "cart" }

func (c Cart) IsGuest() bool {
	return c.UserID == nil
}
