package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"attire-rental/internal/domain"
	"attire-rental/internal/middleware"
	"attire-rental/internal/repository"
	"attire-rental/internal/service"
	"attire-rental/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductRepository struct {
	products map[int64]*domain.Product
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) ListByModel(ctx context.Context, modelID int64) ([]*domain.Product, error) {
	return []*domain.Product{}, nil
}

func (m *mockProductRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	seen := make(map[int64]bool, len(ids))
	result := []*domain.Product{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, exists := m.products[id]; exists {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) ListWithModel(ctx context.Context) ([]*domain.ProductListing, error) {
	return []*domain.ProductListing{}, nil
}

func (m *mockProductRepository) UpdateWithAudit(ctx context.Context, old, updated *domain.Product) error {
	return nil
}

func (m *mockProductRepository) DeleteWithAudit(ctx context.Context, product *domain.Product) error {
	return nil
}

type mockOrderRepository struct {
	orders map[int64]*domain.Order
	items  map[int64][]int64
	nextID int64
}

func (m *mockOrderRepository) CreateFromCart(ctx context.Context, order *domain.Order, cartProductIDs []int64) error {
	m.nextID++
	order.ID = m.nextID
	order.CreatedAt = time.Now()
	m.orders[order.ID] = order
	m.items[order.ID] = append([]int64{}, cartProductIDs...)
	return nil
}

func (m *mockOrderRepository) FindDetail(ctx context.Context, orderID int64) ([]*domain.OrderDetail, error) {
	order, exists := m.orders[orderID]
	if !exists {
		return []*domain.OrderDetail{}, nil
	}
	details := []*domain.OrderDetail{}
	for range m.items[orderID] {
		details = append(details, &domain.OrderDetail{OrderID: orderID, FullName: order.FullName, Quantity: 1})
	}
	return details, nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

type orderFixture struct {
	router      chi.Router
	renderer    *stubRenderer
	manager     *session.Manager
	productRepo *mockProductRepository
	orderRepo   *mockOrderRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		renderer:    &stubRenderer{},
		manager:     session.NewManager([]byte("0123456789abcdef0123456789abcdef"), []byte("fedcba9876543210fedcba9876543210"), false),
		productRepo: &mockProductRepository{products: make(map[int64]*domain.Product)},
		orderRepo:   &mockOrderRepository{orders: make(map[int64]*domain.Order), items: make(map[int64][]int64)},
	}

	logger := zap.NewNop()
	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(f.manager))

	handler := NewOrderHandler(
		service.NewCartService(f.productRepo),
		service.NewCheckoutService(f.orderRepo),
		f.renderer,
		logger,
	)
	handler.RegisterRoutes(r, middleware.RequireUser(logger))

	f.router = r
	return f
}

// signedInCookies builds a session cookie carrying a signed-in member.
func (f *orderFixture) signedInCookies(t *testing.T, userID int64) []*http.Cookie {
	t.Helper()

	state := f.manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	state.SignIn(&domain.User{ID: userID, Email: "member@example.com", FullName: "Member"})

	w := httptest.NewRecorder()
	require.NoError(t, state.Save(httptest.NewRequest(http.MethodGet, "/", nil), w))
	return w.Result().Cookies()
}

func TestOrderHandler_AddToCartAccumulates(t *testing.T) {
	f := newOrderFixture(t)
	f.productRepo.products[5] = &domain.Product{ID: 5, Name: "gown", Price: 1500}

	// Two adds of the same product, carrying the cookie forward
	first := postForm(f.router, "/cart/add", url.Values{"productId": {"5"}}, nil)
	require.Equal(t, http.StatusSeeOther, first.Code)

	second := postForm(f.router, "/cart/add", url.Values{"productId": {"5"}}, first.Result().Cookies())
	require.Equal(t, http.StatusSeeOther, second.Code)

	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	for _, c := range second.Result().Cookies() {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cart", f.renderer.name)
	products, ok := f.renderer.data["Products"].([]*domain.Product)
	require.True(t, ok)
	// Duplicate entries stay separate lines
	require.Len(t, products, 2)
	assert.Equal(t, "gown", products[0].Name)
	assert.Equal(t, "gown", products[1].Name)
}

func TestOrderHandler_AddToCartRejectsBadID(t *testing.T) {
	f := newOrderFixture(t)

	w := postForm(f.router, "/cart/add", url.Values{"productId": {"not-a-number"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_CheckoutRequiresSignin(t *testing.T) {
	f := newOrderFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))
}

func TestOrderHandler_CheckoutFormEmptyCartRedirects(t *testing.T) {
	f := newOrderFixture(t)
	cookies := f.signedInCookies(t, 1)

	r := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
}

func TestOrderHandler_CheckoutPlacesOrderAndClearsCart(t *testing.T) {
	f := newOrderFixture(t)
	f.productRepo.products[5] = &domain.Product{ID: 5, Name: "gown", Price: 1500}

	cookies := f.signedInCookies(t, 1)
	withItem := postForm(f.router, "/cart/add", url.Values{"productId": {"5"}}, cookies)
	require.Equal(t, http.StatusSeeOther, withItem.Code)

	checkout := postForm(f.router, "/checkout", url.Values{
		"fullname":       {"Member"},
		"address":        {"456 Checkout Lane"},
		"phone":          {"0898765432"},
		"payment_method": {"bank-transfer"},
	}, withItem.Result().Cookies())

	require.Equal(t, http.StatusSeeOther, checkout.Code)
	assert.Equal(t, "/order-confirmation", checkout.Header().Get("Location"))
	require.Len(t, f.orderRepo.orders, 1)
	assert.Equal(t, []int64{5}, f.orderRepo.items[1])

	// Confirmation renders from the session's last order id, and the cart
	// is now empty
	r := httptest.NewRequest(http.MethodGet, "/order-confirmation", nil)
	for _, c := range checkout.Result().Cookies() {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "order-confirmation", f.renderer.name)
	assert.Empty(t, f.renderer.data["CartItems"])
}

func TestOrderHandler_CheckoutEmptyCartRedirects(t *testing.T) {
	f := newOrderFixture(t)
	cookies := f.signedInCookies(t, 1)

	w := postForm(f.router, "/checkout", url.Values{
		"fullname":       {"Member"},
		"address":        {"456 Checkout Lane"},
		"phone":          {"0898765432"},
		"payment_method": {"bank-transfer"},
	}, cookies)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	assert.Empty(t, f.orderRepo.orders)
}

func TestOrderHandler_ConfirmationWithoutOrderRedirectsHome(t *testing.T) {
	f := newOrderFixture(t)
	cookies := f.signedInCookies(t, 1)

	r := httptest.NewRequest(http.MethodGet, "/order-confirmation", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestOrderHandler_History(t *testing.T) {
	f := newOrderFixture(t)
	f.orderRepo.orders[1] = &domain.Order{ID: 1, UserID: 7, FullName: "Member"}
	f.orderRepo.orders[2] = &domain.Order{ID: 2, UserID: 8, FullName: "Someone Else"}

	cookies := f.signedInCookies(t, 7)
	r := httptest.NewRequest(http.MethodGet, "/history", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "history", f.renderer.name)
	orders, ok := f.renderer.data["Orders"].([]*domain.Order)
	require.True(t, ok)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(7), orders[0].UserID)
}
