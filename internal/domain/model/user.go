package model

import "time"

// 登録後は変更しない
type User struct {
	ID           int64     `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }
