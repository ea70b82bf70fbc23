package transport

import (
	"errors"
	"net/http"
	"strconv"

	"attire-rental/internal/middleware"
	"attire-rental/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout form payload
type CheckoutRequest struct {
	FullName      string `validate:"required"`
	Address       string `validate:"required"`
	Phone         string `validate:"required"`
	PaymentMethod string `validate:"required"`
}

// OrderHandler handles the cart, checkout and order history pages
type OrderHandler struct {
	cartService     service.CartService
	checkoutService service.CheckoutService
	renderer        Renderer
	logger          *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(cartService service.CartService, checkoutService service.CheckoutService, renderer Renderer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		renderer:        renderer,
		logger:          logger,
	}
}

// RegisterRoutes registers the cart and checkout routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Get("/cart", h.ViewCart)
	r.Post("/cart/add", h.AddToCart)

	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/checkout", h.CheckoutForm)
		r.Post("/checkout", h.Checkout)
		r.Get("/order-confirmation", h.OrderConfirmation)
		r.Get("/history", h.History)
	})
}

// AddToCart appends a product id to the session cart. The id is not
// validated against the catalog; stale ids fall out at read time.
func (h *OrderHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.FormValue("productId"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product")
		return
	}

	state, ok := sessionState(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	state.AddToCart(productID)
	if err := state.Save(r, w); err != nil {
		h.logger.Error("Failed to save cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	redirectBack(w, r)
}

// ViewCart resolves the cart entries to product rows and renders them.
// Duplicate entries render as separate lines.
func (h *OrderHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)

	var cart []int64
	if state != nil {
		cart = state.Cart()
	}

	products, err := h.cartService.View(r.Context(), cart)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	data := pageData(r, state)
	data["Title"] = "Shopping Cart"
	data["Products"] = products

	if err := h.renderer.Render(w, http.StatusOK, "cart", data); err != nil {
		h.logger.Error("Failed to render cart page", zap.Error(err))
	}
}

// CheckoutForm renders the checkout page, bouncing back to the cart when
// it is empty.
func (h *OrderHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)
	if state == nil || len(state.Cart()) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	data := pageData(r, state)
	data["Title"] = "Checkout"

	if err := h.renderer.Render(w, http.StatusOK, "checkout", data); err != nil {
		h.logger.Error("Failed to render checkout page", zap.Error(err))
	}
}

// Checkout places the order from the session cart, records it as the last
// order, clears the cart and redirects to the confirmation page.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionState(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	userID, signedIn := state.UserID()
	if !signedIn {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	req := CheckoutRequest{
		FullName:      r.FormValue("fullname"),
		Address:       r.FormValue("address"),
		Phone:         r.FormValue("phone"),
		PaymentMethod: r.FormValue("payment_method"),
	}

	if err := middleware.ValidateRequest(req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))
		respondValidationError(w, err)
		return
	}

	order, err := h.checkoutService.PlaceOrder(r.Context(), userID, service.CheckoutInput{
		FullName:      req.FullName,
		Address:       req.Address,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
	}, state.Cart())
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		h.logger.Error("Failed to place order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	state.SetLastOrderID(order.ID)
	state.ClearCart()
	if err := state.Save(r, w); err != nil {
		h.logger.Error("Failed to save session after checkout", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
	)
	http.Redirect(w, r, "/order-confirmation", http.StatusSeeOther)
}

// OrderConfirmation renders the joined detail of the last placed order.
// Without a recorded order, or when the order no longer resolves, the
// visitor is sent home.
func (h *OrderHandler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)
	if state == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	orderID, ok := state.LastOrderID()
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	details, err := h.checkoutService.Confirmation(r.Context(), orderID)
	if err != nil {
		h.logger.Error("Failed to load order confirmation", zap.Error(err), zap.Int64("order_id", orderID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	if len(details) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pageData(r, state)
	data["Title"] = "Order Confirmation"
	data["Order"] = details

	if err := h.renderer.Render(w, http.StatusOK, "order-confirmation", data); err != nil {
		h.logger.Error("Failed to render order confirmation", zap.Error(err))
	}
}

// History renders the signed-in member's past orders, newest first.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)

	userID, signedIn := state.UserID()
	if !signedIn {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	orders, err := h.checkoutService.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load order history", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	data := pageData(r, state)
	data["Title"] = "Rental History"
	data["Orders"] = orders

	if err := h.renderer.Render(w, http.StatusOK, "history", data); err != nil {
		h.logger.Error("Failed to render history page", zap.Error(err))
	}
}
