package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"attire-rental/internal/domain"
	"attire-rental/internal/session"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func freshState() *session.State {
	manager := session.NewManager([]byte("0123456789abcdef0123456789abcdef"), []byte("fedcba9876543210fedcba9876543210"), false)
	return manager.Load(httptest.NewRequest(http.MethodGet, "/checkout", nil))
}

func requestWithState(state *session.State) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	ctx := context.WithValue(r.Context(), sessionKey, state)
	return r.WithContext(ctx)
}

func TestRequireUser_RedirectsAnonymousVisitors(t *testing.T) {
	guard := RequireUser(zap.NewNop())
	reached := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithState(freshState()))

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))
}

func TestRequireUser_RedirectsWhenSessionMissing(t *testing.T) {
	guard := RequireUser(zap.NewNop())
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without session state")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))
}

func TestRequireUser_PassesSignedInMembers(t *testing.T) {
	guard := RequireUser(zap.NewNop())
	reached := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	state := freshState()
	state.SignIn(&domain.User{ID: 7, Email: "member@example.com"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithState(state))

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionMiddleware_InjectsState(t *testing.T) {
	manager := session.NewManager([]byte("0123456789abcdef0123456789abcdef"), []byte("fedcba9876543210fedcba9876543210"), false)
	mw := SessionMiddleware(manager)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := GetSession(r.Context())
		assert.True(t, ok)
		assert.NotNil(t, state)
		assert.Empty(t, state.Cart())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
}
