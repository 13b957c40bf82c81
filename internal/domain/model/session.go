package model

// セッションに紐づく状態。
// リクエストごとに明示的に受け渡す。
type Session struct {
	ID     string `json:"-"`
	UserID *int64 `json:"user_id,omitempty"`
	CartID *int64 `json:"cart_id,omitempty"`
}

func (s Session) HasCart() bool {
	return s.CartID != nil
}

// 同じセッション・同じ紐づけか
func (s Session) Equal(o Session) bool {
	return s.ID == o.ID && sameID(s.UserID, o.UserID) && sameID(s.CartID, o.CartID)
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func Int64Ptr(v int64) *int64 {
	return &v
}
