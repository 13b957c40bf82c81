package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"sessioncart/internal/middleware"
	auth "sessioncart/internal/usecase/auth_usecase"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	sessions   *middleware.SessionManager
	log        zerolog.Logger
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	sessions *middleware.SessionManager,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		sessions:   sessions,
		log:        log,
	}
}

// /auth/register のリクエストボディ。
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type loginResponse struct {
	Message string `json:"message"`
	CartID  *int64 `json:"cart_id,omitempty"`
}

// /auth を登録
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
}

// POST /auth/register
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusCreated, registerResponse{Message: "user registered", UserID: out.UserID})
}

// POST /auth/login
// 成功したらセッションにユーザーと（マージした）カートを結びつける。
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	sess := middleware.CurrentSession(c)

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		SessionID: sess.ID,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	// マージは古いIDで済んでいるので、ここでIDを付け替える
	sess, err = h.sessions.Renew(c, sess)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", out.UserID).Msg("renew session failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	userID := out.UserID
	sess.UserID = &userID
	if out.CartID != nil {
		sess.CartID = out.CartID
	}
	if err := h.sessions.Save(c, sess); err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("save session failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, loginResponse{Message: "login successful", CartID: out.CartID})
}

// POST /auth/logout
func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		h.log.Error().Err(err).Msg("destroy session failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}

func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
