package usecase

import (
	"errors"
	"net/http"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//400 在庫不足
	ErrInsufficientInventory = errors.New("insufficient inventory")
	//404 カート/明細がない
	ErrNotFound = errors.New("not found")
	//500 DBなど
	ErrStore = errors.New("store error")
)

// handlerがそのまま返せるエラー。
// Errで分類（ErrValidationなど）を辿れる。
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// 分類からステータスを決める
func newError(kind error, message string) *HTTPError {
	status := http.StatusInternalServerError
	switch kind {
	case ErrValidation, ErrInsufficientInventory:
		status = http.StatusBadRequest
	case ErrNotFound:
		status = http.StatusNotFound
	}
	return &HTTPError{Status: status, Message: message, Err: kind}
}
