package redisx

import "fmt"

// セッション: sess:{session_id} -> {"user_id": ..., "cart_id": ...}
const KeySession = "sess:%s"

func SessionKey(sessionID string) string {
	return fmt.Sprintf(KeySession, sessionID)
}
