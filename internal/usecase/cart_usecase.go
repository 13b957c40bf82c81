package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"sessioncart/internal/domain/model"
	repo "sessioncart/internal/repository"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// CartUsecase は /cart の業務ロジックです。
// Cart と CartItem の約束は分けて受け取ります。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	clock        Clock
	log          zerolog.Logger
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	clock Clock,
	log zerolog.Logger,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		clock:        clock,
		log:          log.With().Str("component", "cart").Logger(),
	}
}

// 保存された明細。price_at_timeは追加時点の価格。
type CartItemResponse struct {
	ID          int64          `json:"cart_item_id"`
	CartID      int64          `json:"cart_id"`
	ProductID   int64          `json:"product_id"`
	VariantID   *int64         `json:"variant_id"`
	Quantity    int64          `json:"quantity"`
	PriceAtTime string         `json:"price_at_time"`
	Metadata    model.Metadata `json:"metadata"`
}

// 表示用の明細。current_priceは商品の現在価格。
type CartLineResponse struct {
	ID           int64          `json:"cart_item_id"`
	ProductID    int64          `json:"product_id"`
	VariantID    *int64         `json:"variant_id"`
	Quantity     int64          `json:"quantity"`
	CurrentPrice string         `json:"current_price"`
	LineTotal    string         `json:"line_total"`
	Metadata     model.Metadata `json:"metadata"`
}

type CartResponse struct {
	CartID   int64              `json:"cart_id"`
	Items    []CartLineResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	Tax      string             `json:"tax"`
	Total    string             `json:"total"`
}

type CreateCartResponse struct {
	CartID int64 `json:"cart_id"`
}

type AddItemInput struct {
	ProductID int64
	VariantID *int64
	Quantity  int64
	Metadata  model.Metadata
}

// nilは「指定なし」。指定された値はゼロでもそのまま使う。
type UpdateItemInput struct {
	Quantity *int64
	Metadata *model.Metadata
}

// セッションにカートを作る。ログイン中ならユーザーのカート、そうでなければゲストカート。
func (u *CartUsecase) CreateCart(ctx context.Context, sess model.Session) (CreateCartResponse, error) {
	if sess.ID == "" {
		return CreateCartResponse{}, newError(ErrValidation, "no session")
	}

	now := u.clock.Now()
	cart := model.Cart{
		UserID:    sess.UserID,
		SessionID: sess.ID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(model.CartTTL),
	}
	if err := u.cartRepo.Create(ctx, &cart); err != nil {
		return CreateCartResponse{}, u.storeFailure("create cart", 0, err)
	}

	u.log.Info().Int64("cart_id", cart.ID).Bool("guest", cart.IsGuest()).Msg("cart created")
	return CreateCartResponse{CartID: cart.ID}, nil
}

// カートと合計を返す。cartIDがnil（セッションにカートなし）なら404。
func (u *CartUsecase) GetCart(ctx context.Context, cartID *int64) (CartResponse, error) {
	if cartID == nil {
		return CartResponse{}, newError(ErrNotFound, "no cart found")
	}

	if _, err := u.cartRepo.FindByID(ctx, *cartID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, newError(ErrNotFound, "no cart found")
		}
		return CartResponse{}, u.storeFailure("find cart", *cartID, err)
	}

	lines, err := u.cartItemRepo.ListLinesByCartID(ctx, *cartID)
	if err != nil {
		return CartResponse{}, u.storeFailure("list cart items", *cartID, err)
	}

	return buildCartResponse(*cartID, lines), nil
}

// 在庫を確認してから明細を追加。価格は同じ処理で読んだ現在価格を保存する。
// 在庫の確認と追加の間はロックしない（同時追加で在庫を超えることはありうる）。
func (u *CartUsecase) AddItem(ctx context.Context, cartID int64, in AddItemInput) (CartItemResponse, error) {
	if cartID <= 0 {
		return CartItemResponse{}, newError(ErrValidation, "invalid cart id")
	}
	if in.ProductID <= 0 {
		return CartItemResponse{}, newError(ErrValidation, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartItemResponse{}, newError(ErrValidation, "invalid quantity")
	}
	if in.VariantID != nil && *in.VariantID <= 0 {
		return CartItemResponse{}, newError(ErrValidation, "invalid variant_id")
	}

	if _, err := u.cartRepo.FindByID(ctx, cartID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemResponse{}, newError(ErrNotFound, "cart not found")
		}
		return CartItemResponse{}, u.storeFailure("find cart", cartID, err)
	}

	// 商品がなければ在庫0として扱う
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CartItemResponse{}, u.storeFailure("find product", cartID, err)
	}
	if in.Quantity > p.Inventory {
		return CartItemResponse{}, newError(ErrInsufficientInventory, "not enough inventory")
	}

	item := model.CartItem{
		CartID:      cartID,
		ProductID:   in.ProductID,
		VariantID:   in.VariantID,
		Quantity:    in.Quantity,
		PriceAtTime: p.Price,
		Metadata:    in.Metadata,
	}
	if err := u.cartItemRepo.Insert(ctx, &item); err != nil {
		return CartItemResponse{}, u.storeFailure("insert cart item", cartID, err)
	}

	return toCartItemResponse(item), nil
}

// セッションのカートに追加
func (u *CartUsecase) AddItemToSessionCart(ctx context.Context, sess model.Session, in AddItemInput) (CartItemResponse, error) {
	if !sess.HasCart() {
		return CartItemResponse{}, newError(ErrValidation, "no active cart")
	}
	return u.AddItem(ctx, *sess.CartID, in)
}

// 指定された項目だけ更新。在庫は再確認しない。
func (u *CartUsecase) UpdateItem(ctx context.Context, cartID int64, cartItemID int64, in UpdateItemInput) (CartItemResponse, error) {
	if cartID <= 0 || cartItemID <= 0 {
		return CartItemResponse{}, newError(ErrValidation, "invalid id")
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		return CartItemResponse{}, newError(ErrValidation, "invalid quantity")
	}

	item, err := u.cartItemRepo.FindByCartAndID(ctx, cartID, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemResponse{}, newError(ErrNotFound, "cart item not found")
	}
	if err != nil {
		return CartItemResponse{}, u.storeFailure("find cart item", cartID, err)
	}

	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Metadata != nil {
		item.Metadata = *in.Metadata
	}

	if err := u.cartItemRepo.Update(ctx, &item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemResponse{}, newError(ErrNotFound, "cart item not found")
		}
		return CartItemResponse{}, u.storeFailure("update cart item", cartID, err)
	}

	return toCartItemResponse(item), nil
}

// 明細削除（無くてもエラーにしない）
func (u *CartUsecase) RemoveItem(ctx context.Context, cartID int64, cartItemID int64) error {
	if cartID <= 0 || cartItemID <= 0 {
		return newError(ErrValidation, "invalid id")
	}
	if err := u.cartItemRepo.DeleteByCartAndID(ctx, cartID, cartItemID); err != nil {
		return u.storeFailure("remove cart item", cartID, err)
	}
	return nil
}

// 明細を全削除（何度呼んでも同じ）
func (u *CartUsecase) ClearCart(ctx context.Context, cartID int64) error {
	if cartID <= 0 {
		return newError(ErrValidation, "invalid cart id")
	}
	if err := u.cartItemRepo.DeleteByCartID(ctx, cartID); err != nil {
		return u.storeFailure("clear cart", cartID, err)
	}
	return nil
}

// セッションのカートを空にする。カート行はそのまま残す。
func (u *CartUsecase) DeleteSessionCart(ctx context.Context, sess model.Session) error {
	if !sess.HasCart() {
		return nil
	}
	return u.ClearCart(ctx, *sess.CartID)
}

// DBエラーはログに残して、呼び出し側には中身を出さない
func (u *CartUsecase) storeFailure(op string, cartID int64, err error) error {
	ev := u.log.Error().Err(err).Str("op", op)
	if cartID > 0 {
		ev = ev.Int64("cart_id", cartID)
	}
	ev.Msg("cart store failed")
	return newError(ErrStore, "internal error")
}

func buildCartResponse(cartID int64, lines []model.CartLine) CartResponse {
	items := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineResponse{
			ID:           l.CartItemID,
			ProductID:    l.ProductID,
			VariantID:    l.VariantID,
			Quantity:     l.Quantity,
			CurrentPrice: formatMoney(l.CurrentPrice),
			LineTotal:    formatMoney(l.LineTotal()),
			Metadata:     l.Metadata,
		})
	}

	totals := ComputeTotals(lines)
	return CartResponse{
		CartID:   cartID,
		Items:    items,
		Subtotal: formatMoney(totals.Subtotal),
		Tax:      formatMoney(totals.Tax),
		Total:    formatMoney(totals.Total),
	}
}

func toCartItemResponse(it model.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:          it.ID,
		CartID:      it.CartID,
		ProductID:   it.ProductID,
		VariantID:   it.VariantID,
		Quantity:    it.Quantity,
		PriceAtTime: formatMoney(it.PriceAtTime),
		Metadata:    it.Metadata,
	}
}
