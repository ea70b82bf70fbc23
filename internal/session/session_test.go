package session

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"attire-rental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func testEncKey() []byte {
	return []byte("fedcba9876543210fedcba9876543210")
}

// roundTrip saves the state into a response cookie and loads it back from
// a follow-up request, the way a browser would carry it.
func roundTrip(t *testing.T, manager *Manager, state *State) *State {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, state.Save(r, w))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range w.Result().Cookies() {
		next.AddCookie(cookie)
	}
	return manager.Load(next)
}

func TestState_CartRoundTrip(t *testing.T) {
	manager := NewManager(testSecret(), testEncKey(), false)
	state := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, state.Cart())

	state.AddToCart(5)
	state.AddToCart(7)
	state.AddToCart(5)

	reloaded := roundTrip(t, manager, state)
	assert.Equal(t, []int64{5, 7, 5}, reloaded.Cart())
}

func TestState_ClearCart(t *testing.T) {
	manager := NewManager(testSecret(), testEncKey(), false)
	state := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	state.AddToCart(3)
	state.ClearCart()

	reloaded := roundTrip(t, manager, state)
	assert.Empty(t, reloaded.Cart())
}

func TestState_SignIn(t *testing.T) {
	manager := NewManager(testSecret(), testEncKey(), false)
	state := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	_, signedIn := state.User()
	assert.False(t, signedIn)

	state.SignIn(&domain.User{ID: 42, Email: "member@example.com", FullName: "Member"})

	reloaded := roundTrip(t, manager, state)
	user, signedIn := reloaded.User()
	require.True(t, signedIn)
	assert.Equal(t, "member@example.com", user.Email)

	id, ok := reloaded.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestState_SignIn_PasswordHashStaysServerSide(t *testing.T) {
	const hash = "$2a$10$SENTINEL-BCRYPT-HASH"

	manager := NewManager(testSecret(), testEncKey(), false)
	state := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	state.SignIn(&domain.User{ID: 7, Email: "member@example.com", PasswordHash: hash})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, state.Save(r, w))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, cookie := range cookies {
		assert.NotContains(t, cookie.Value, hash)
		if decoded, err := base64.URLEncoding.DecodeString(cookie.Value); err == nil {
			assert.NotContains(t, string(decoded), hash)
		}
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		next.AddCookie(cookie)
	}
	user, signedIn := manager.Load(next).User()
	require.True(t, signedIn)
	assert.Equal(t, "member@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestState_LastOrderID(t *testing.T) {
	manager := NewManager(testSecret(), testEncKey(), false)
	state := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	_, ok := state.LastOrderID()
	assert.False(t, ok)

	state.SetLastOrderID(99)

	reloaded := roundTrip(t, manager, state)
	id, ok := reloaded.LastOrderID()
	require.True(t, ok)
	assert.Equal(t, int64(99), id)
}

func TestState_Destroy(t *testing.T) {
	manager := NewManager(testSecret(), testEncKey(), false)
	state := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	state.SignIn(&domain.User{ID: 1})
	state.AddToCart(2)
	state.Destroy()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, state.Save(r, w))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
