package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	repo "sessioncart/internal/repository"
)

type MergeStrategy string

const (
	// ゲストカートがなかった
	MergeNone MergeStrategy = "none"
	// ゲストカートの持ち主をユーザーに変えた
	MergeReassigned MergeStrategy = "reassigned"
	// 明細をユーザーのカートへ移してゲストカートを消した
	MergeMoved MergeStrategy = "moved"
)

type MergeResult struct {
	CartID     int64
	Strategy   MergeStrategy
	MovedItems int64
}

// セッションに紐づくカートIDがあるか。ゼロ値（エラー時）はfalse。
func (r MergeResult) Merged() bool {
	return r.Strategy == MergeReassigned || r.Strategy == MergeMoved
}

// ログイン時にゲストカートとユーザーのカートを1つにまとめる
type MergeUsecase struct {
	tx  repo.TransactionManager
	log zerolog.Logger
}

func NewMergeUsecase(tx repo.TransactionManager, log zerolog.Logger) *MergeUsecase {
	return &MergeUsecase{
		tx:  tx,
		log: log.With().Str("component", "merge").Logger(),
	}
}

// 検索→付け替え→削除を1トランザクションで行う。
// 途中で失敗したら全部rollbackされ、半端なマージは残らない。
// 同じ商品が両方にあっても数量はまとめない（明細を並べるだけ）。
func (u *MergeUsecase) MergeOnLogin(ctx context.Context, sessionID string, userID int64) (MergeResult, error) {
	if sessionID == "" || userID <= 0 {
		return MergeResult{Strategy: MergeNone}, newError(ErrValidation, "invalid session or user")
	}

	out := MergeResult{Strategy: MergeNone}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//このセッションのゲストカート
		guest, err := r.Carts().FindGuestBySessionID(ctx, sessionID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		//ユーザーがすでに持っているカート
		own, err := r.Carts().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			if err := r.Carts().AssignUser(ctx, guest.ID, userID); err != nil {
				return err
			}
			out = MergeResult{CartID: guest.ID, Strategy: MergeReassigned}
			return nil
		}
		if err != nil {
			return err
		}

		moved, err := r.CartItems().MoveToCart(ctx, guest.ID, own.ID)
		if err != nil {
			return err
		}
		if err := r.Carts().Delete(ctx, guest.ID); err != nil {
			return err
		}
		out = MergeResult{CartID: own.ID, Strategy: MergeMoved, MovedItems: moved}
		return nil
	})
	if err != nil {
		u.log.Error().Err(err).Int64("user_id", userID).Msg("cart merge failed")
		return MergeResult{Strategy: MergeNone}, newError(ErrStore, "internal error")
	}

	if out.Merged() {
		u.log.Info().
			Int64("user_id", userID).
			Int64("cart_id", out.CartID).
			Str("strategy", string(out.Strategy)).
			Int64("moved_items", out.MovedItems).
			Msg("guest cart merged")
	}
	return out, nil
}
