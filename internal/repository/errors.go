package repository

import "errors"

var (
	// 対象の行がない
	ErrNotFound = errors.New("not found")

	// users.emailの一意制約違反
	ErrDuplicateEmail = errors.New("duplicate email")
)
