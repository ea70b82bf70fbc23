package transport

import (
	"fmt"
	"net/http"
	"strings"

	"attire-rental/internal/middleware"
	"attire-rental/internal/session"
	"attire-rental/internal/view"

	"github.com/gorilla/csrf"
)

// Renderer is the view collaborator handlers hand page data to.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data view.Data) error
}

// sessionState pulls the typed session out of the request context. The
// session middleware always runs first, so a miss means misconfigured
// routing.
func sessionState(r *http.Request) (*session.State, bool) {
	return middleware.GetSession(r.Context())
}

// pageData builds the base data bag every page receives: the signed-in
// user (when present), the current cart size and the CSRF form field.
func pageData(r *http.Request, state *session.State) view.Data {
	data := view.Data{
		"User":      nil,
		"CartItems": []int64{},
		"CSRFField": csrf.TemplateField(r),
	}

	if state == nil {
		return data
	}

	if user, ok := state.User(); ok {
		data["User"] = user
	}
	data["CartItems"] = state.Cart()

	return data
}

// respondValidationError writes a 400 listing each rejected field with its
// message, so the visitor knows which inputs to fix.
func respondValidationError(w http.ResponseWriter, err error) {
	fieldErrors := middleware.FormatValidationErrors(err)
	if len(fieldErrors) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid form")
		return
	}

	var b strings.Builder
	for _, fe := range fieldErrors {
		fmt.Fprintf(&b, "%s: %s\n", fe.Field, fe.Message)
	}
	middleware.RespondWithError(w, http.StatusBadRequest, strings.TrimRight(b.String(), "\n"))
}

// redirectBack sends the visitor to the page they came from, falling back
// to the home page.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
