package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var (
	// 必須項目がない
	ErrMissingFields = errors.New("missing fields")

	// email形式ではない
	ErrInvalidEmail = errors.New("invalid email")
)

var emailLike = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthValidator struct{}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

// サインアップの入力を検証
func (v *AuthValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrMissingFields
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ログインの入力を検証（形式は見ない。違えば認証失敗になるだけ）
func (v *AuthValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingFields
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailLike.MatchString(s)
}
