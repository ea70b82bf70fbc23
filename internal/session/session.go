package session

import (
	"encoding/gob"
	"net/http"

	"attire-rental/internal/domain"

	"github.com/gorilla/sessions"
)

const cookieName = "storefront-session"

// Session value keys
const (
	keyCart        = "cart"
	keyUser        = "user"
	keyUserID      = "userId"
	keyLastOrderID = "lastOrderId"
)

func init() {
	// Types stored in session values must be gob-registered.
	gob.Register(domain.User{})
	gob.Register([]int64{})
}

// Manager wraps the cookie-backed session store.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager creates a session manager over a cookie store. The auth key
// signs the cookie and the encryption key (16/24/32 bytes) keeps its
// contents opaque to the client.
func NewManager(authKey, encKey []byte, secure bool) *Manager {
	store := sessions.NewCookieStore(authKey, encKey)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"

	return &Manager{store: store}
}

// Load returns the visitor's session state, creating a fresh one when no
// valid cookie is present. A decode error is treated as a fresh session.
func (m *Manager) Load(r *http.Request) *State {
	s, _ := m.store.Get(r, cookieName)
	return &State{session: s}
}

// State is the typed per-request session scope: cart, signed-in user and
// last placed order. Mutations are buffered until Save writes the cookie.
type State struct {
	session *sessions.Session
}

// Cart returns the ordered cart product ids. Duplicates are preserved;
// each entry represents quantity 1.
func (st *State) Cart() []int64 {
	if cart, ok := st.session.Values[keyCart].([]int64); ok {
		return cart
	}
	return []int64{}
}

// AddToCart appends a product id to the cart without validating that the
// product exists; stale ids are only caught at read time.
func (st *State) AddToCart(productID int64) {
	st.session.Values[keyCart] = append(st.Cart(), productID)
}

// ClearCart empties the cart.
func (st *State) ClearCart() {
	st.session.Values[keyCart] = []int64{}
}

// User returns the signed-in user, if any.
func (st *State) User() (*domain.User, bool) {
	if u, ok := st.session.Values[keyUser].(domain.User); ok {
		return &u, true
	}
	return nil, false
}

// UserID returns the signed-in user's numeric id, if any.
func (st *State) UserID() (int64, bool) {
	if id, ok := st.session.Values[keyUserID].(int64); ok {
		return id, true
	}
	return 0, false
}

// SignIn stores the member's record and numeric id in the session. The
// password hash never leaves the server, so it is stripped before the
// record is serialized into the cookie.
func (st *State) SignIn(user *domain.User) {
	u := *user
	u.PasswordHash = ""
	st.session.Values[keyUser] = u
	st.session.Values[keyUserID] = user.ID
}

// LastOrderID returns the id of the most recently placed order, if any.
func (st *State) LastOrderID() (int64, bool) {
	if id, ok := st.session.Values[keyLastOrderID].(int64); ok {
		return id, true
	}
	return 0, false
}

// SetLastOrderID records the most recently placed order.
func (st *State) SetLastOrderID(orderID int64) {
	st.session.Values[keyLastOrderID] = orderID
}

// Destroy expires the session cookie immediately.
func (st *State) Destroy() {
	st.session.Values = make(map[interface{}]interface{})
	st.session.Options.MaxAge = -1
}

// Save writes the session back to the response cookie. Must be called
// before the response body or a redirect is written.
func (st *State) Save(r *http.Request, w http.ResponseWriter) error {
	return st.session.Save(r, w)
}
