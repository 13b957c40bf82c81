package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"sessioncart/internal/domain/model"
	"sessioncart/internal/middleware"
	"sessioncart/internal/usecase"
)

// /cartのHTTP
type CartHandler struct {
	uc       *usecase.CartUsecase
	sessions *middleware.SessionManager
	log      zerolog.Logger
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, sessions *middleware.SessionManager, log zerolog.Logger) *CartHandler {
	return &CartHandler{uc: uc, sessions: sessions, log: log}
}

type AddCartItemRequest struct {
	ProductID int64          `json:"product_id"`
	VariantID *int64         `json:"variant_id"`
	Quantity  int64          `json:"quantity"`
	Metadata  model.Metadata `json:"metadata"`
}

// 省略した項目は変更しない
type UpdateCartItemRequest struct {
	Quantity *int64          `json:"quantity"`
	Metadata *model.Metadata `json:"metadata"`
}

// /cart を登録
func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.createCart)
	g.GET("", h.getCart)
	g.DELETE("", h.deleteSessionCart)
	g.POST("/items", h.addToSessionCart)
	g.POST("/:id/items", h.addItem)
	g.PUT("/:id/items/:itemId", h.updateItem)
	g.DELETE("/:id/items/:itemId", h.removeItem)
	g.DELETE("/:id", h.clearCart)
}

// 作ったカートをセッションに結びつける
func (h *CartHandler) createCart(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	out, err := h.uc.CreateCart(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}

	cartID := out.CartID
	sess.CartID = &cartID
	if err := h.sessions.Save(c, sess); err != nil {
		h.log.Error().Err(err).Int64("cart_id", cartID).Msg("save session failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	out, err := h.uc.GetCart(c.Request().Context(), sess.CartID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	cartID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), cartID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) addToSessionCart(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItemToSessionCart(c.Request().Context(), middleware.CurrentSession(c), req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	cartID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), cartID, itemID, usecase.UpdateItemInput{
		Quantity: req.Quantity,
		Metadata: req.Metadata,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	cartID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
	}

	if err := h.uc.RemoveItem(c.Request().Context(), cartID, itemID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	cartID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}

	if err := h.uc.ClearCart(c.Request().Context(), cartID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) deleteSessionCart(c echo.Context) error {
	if err := h.uc.DeleteSessionCart(c.Request().Context(), middleware.CurrentSession(c)); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r AddCartItemRequest) toInput() usecase.AddItemInput {
	return usecase.AddItemInput{
		ProductID: r.ProductID,
		VariantID: r.VariantID,
		Quantity:  r.Quantity,
		Metadata:  r.Metadata,
	}
}
