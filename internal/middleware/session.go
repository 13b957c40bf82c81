package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"sessioncart/internal/domain/model"
	"sessioncart/internal/repository"
)

const (
	CtxSessionKey     = "session" // model.Session
	SessionCookieName = "sid"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// セッションの読み込み・保存・破棄。
// 保存は変更したhandlerが明示的に呼ぶ（未変更のセッションは保存しない）。
type SessionManager struct {
	store        repository.SessionStore
	signer       *SessionSigner
	idGen        IDGenerator
	clock        Clock
	ttl          time.Duration
	cookieSecure bool
	log          zerolog.Logger
}

func NewSessionManager(
	store repository.SessionStore,
	signer *SessionSigner,
	idGen IDGenerator,
	clock Clock,
	ttl time.Duration,
	cookieSecure bool,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		store:        store,
		signer:       signer,
		idGen:        idGen,
		clock:        clock,
		ttl:          ttl,
		cookieSecure: cookieSecure,
		log:          log.With().Str("component", "session").Logger(),
	}
}

// Cookieからセッションを復元してcontextに入れる。
// Cookieが無い・不正・期限切れのときは新しいIDで空のセッションを作る。
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := m.load(c)
			if err != nil {
				m.log.Error().Err(err).Msg("load session failed")
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.Set(CtxSessionKey, sess)
			return next(c)
		}
	}
}

func (m *SessionManager) load(c echo.Context) (model.Session, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return m.fresh(), nil
	}

	sessionID, err := m.signer.Parse(cookie.Value)
	if err != nil {
		return m.fresh(), nil
	}

	sess, found, err := m.store.Load(c.Request().Context(), sessionID)
	if err != nil {
		return model.Session{}, err
	}
	if !found {
		return m.fresh(), nil
	}
	return sess, nil
}

func (m *SessionManager) fresh() model.Session {
	return model.Session{ID: m.idGen.NewID()}
}

// 保存してCookieを発行する。レスポンスを書く前に呼ぶこと。
func (m *SessionManager) Save(c echo.Context, sess model.Session) error {
	if err := m.store.Save(c.Request().Context(), sess); err != nil {
		return err
	}

	token, err := m.signer.Sign(sess.ID, m.clock.Now())
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
	c.Set(CtxSessionKey, sess)
	return nil
}

// 同じ中身で新しいIDに付け替える（ログイン時のセッション固定対策）。
// 古いIDは保存先から消す。新しいIDはSaveで保存・発行する。
func (m *SessionManager) Renew(c echo.Context, sess model.Session) (model.Session, error) {
	if sess.ID != "" {
		if err := m.store.Delete(c.Request().Context(), sess.ID); err != nil {
			return model.Session{}, err
		}
	}
	sess.ID = m.idGen.NewID()
	return sess, nil
}

// セッションを消してCookieも無効にする
func (m *SessionManager) Destroy(c echo.Context) error {
	sess := CurrentSession(c)
	if sess.ID != "" {
		if err := m.store.Delete(c.Request().Context(), sess.ID); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	c.Set(CtxSessionKey, m.fresh())
	return nil
}

// Middlewareが入れたセッション（無ければ空）
func CurrentSession(c echo.Context) model.Session {
	sess, _ := c.Get(CtxSessionKey).(model.Session)
	return sess
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
