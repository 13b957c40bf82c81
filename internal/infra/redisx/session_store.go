package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sessioncart/internal/domain/model"
)

// RedisにセッションをJSONで保存する。TTLは保存のたびに延長。
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (model.Session, bool, error) {
	raw, err := s.rdb.Get(ctx, SessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Session{}, false, nil
	}
	if err != nil {
		return model.Session{}, false, err
	}

	sess, err := decodeSession(sessionID, raw)
	if err != nil {
		return model.Session{}, false, err
	}
	return sess, true, nil
}

func (s *SessionStore) Save(ctx context.Context, sess model.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, SessionKey(sess.ID), raw, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, SessionKey(sessionID)).Err()
}

func decodeSession(sessionID string, raw []byte) (model.Session, error) {
	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return model.Session{}, err
	}
	sess.ID = sessionID
	return sess, nil
}
