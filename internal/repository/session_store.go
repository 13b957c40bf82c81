package repository

import (
	"context"

	"sessioncart/internal/domain/model"
)

// セッションID → {user_id, cart_id}
type SessionStore interface {
	// 無ければ found=false
	Load(ctx context.Context, sessionID string) (sess model.Session, found bool, err error)
	Save(ctx context.Context, sess model.Session) error
	Delete(ctx context.Context, sessionID string) error
}
