package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"sessioncart/internal/repository"
	"sessioncart/internal/usecase"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email     string
	Password  string
	SessionID string
}

// CartIDはマージ後にセッションへ保存するカート（なければnil）
type LoginOutput struct {
	UserID int64  `json:"user_id"`
	CartID *int64 `json:"cart_id,omitempty"`
}

// メールまたはパスワードが違う（どちらかは区別しない）
var ErrInvalidCredentials = errors.New("invalid credentials")

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// ゲストカートのマージ
type CartMerger interface {
	MergeOnLogin(ctx context.Context, sessionID string, userID int64) (usecase.MergeResult, error)
}

type LoginUsecase struct {
	userRepo  repository.UserRepository
	validator InputValidator
	verifier  PasswordVerifier
	merger    CartMerger
	log       zerolog.Logger
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	validator InputValidator,
	verifier PasswordVerifier,
	merger CartMerger,
	log zerolog.Logger,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:  userRepo,
		validator: validator,
		verifier:  verifier,
		merger:    merger,
		log:       log.With().Str("component", "login").Logger(),
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := strings.TrimSpace(in.Email)
	if err := u.validator.ValidateLogin(ctx, email, in.Password); err != nil {
		return out, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if in.SessionID == "" {
		return out, fmt.Errorf("%w: session is required", ErrValidation)
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		u.log.Error().Err(err).Msg("find user failed")
		return out, ErrInternal
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//ゲストカートのマージ（失敗したらログイン自体を失敗にする）
	merged, err := u.merger.MergeOnLogin(ctx, in.SessionID, user.ID)
	if err != nil {
		return out, ErrInternal
	}

	out.UserID = user.ID
	if merged.Merged() {
		cartID := merged.CartID
		out.CartID = &cartID
	}
	return out, nil
}
