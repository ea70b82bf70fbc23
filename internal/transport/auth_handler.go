package transport

import (
	"errors"
	"net/http"
	"time"

	"attire-rental/internal/middleware"
	"attire-rental/internal/repository"
	"attire-rental/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const birthdateLayout = "2006-01-02"

// SignupRequest represents the signup form payload
type SignupRequest struct {
	Email     string `validate:"required,email"`
	FullName  string `validate:"required"`
	Birthdate string `validate:"required"`
	Phone     string `validate:"required"`
	Address   string `validate:"required"`
	Password  string `validate:"required,min=6"`
}

// AuthHandler handles member signup, signin and the profile page
type AuthHandler struct {
	authService service.AuthService
	renderer    Renderer
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, renderer Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		renderer:    renderer,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes. The guard middleware protects
// member-only pages with a redirect to sign-in.
func (h *AuthHandler) RegisterRoutes(r chi.Router, guard, rateLimit func(http.Handler) http.Handler) {
	r.Get("/signup", h.SignupForm)
	r.With(rateLimit).Post("/signup", h.Signup)
	r.Get("/signin", h.SigninForm)
	r.With(rateLimit).Post("/signin", h.Signin)
	r.Get("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/profile", h.Profile)
	})
}

// SignupForm renders the signup page.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "Sign Up"

	if err := h.renderer.Render(w, http.StatusOK, "signup", data); err != nil {
		h.logger.Error("Failed to render signup page", zap.Error(err))
	}
}

// Signup registers a member and redirects to sign-in. The new member is
// not signed in automatically.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req := SignupRequest{
		Email:     r.FormValue("email"),
		FullName:  r.FormValue("fullname"),
		Birthdate: r.FormValue("birthdate"),
		Phone:     r.FormValue("phone"),
		Address:   r.FormValue("address"),
		Password:  r.FormValue("password"),
	}

	if err := middleware.ValidateRequest(req); err != nil {
		h.logger.Debug("Signup validation failed", zap.Error(err))
		respondValidationError(w, err)
		return
	}

	birthdate, err := time.Parse(birthdateLayout, req.Birthdate)
	if err != nil {
		h.logger.Debug("Invalid birthdate", zap.String("birthdate", req.Birthdate))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid birthdate")
		return
	}

	user, err := h.authService.Signup(r.Context(), service.SignupInput{
		Email:     req.Email,
		FullName:  req.FullName,
		Birthdate: birthdate,
		Phone:     req.Phone,
		Address:   req.Address,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			middleware.RespondWithError(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		h.logger.Error("Signup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign up")
		return
	}

	h.logger.Info("Member signed up",
		zap.Int64("user_id", user.ID),
		zap.String("member_id", user.MemberID.String()),
	)
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

// SigninForm renders the sign-in page.
func (h *AuthHandler) SigninForm(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "Sign In"

	if err := h.renderer.Render(w, http.StatusOK, "signin", data); err != nil {
		h.logger.Error("Failed to render signin page", zap.Error(err))
	}
}

// Signin authenticates a member and establishes the session identity. An
// unknown email and a wrong password produce the same response.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.authService.Signin(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("Signin failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	state, ok := sessionState(r)
	if !ok {
		h.logger.Error("Session state missing during signin")
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	state.SignIn(user)
	if err := state.Save(r, w); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	h.logger.Info("Member signed in", zap.Int64("user_id", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and redirects home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionState(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	state.Destroy()
	if err := state.Save(r, w); err != nil {
		h.logger.Error("Failed to destroy session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Profile renders the signed-in member's profile page.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "My Profile"

	if err := h.renderer.Render(w, http.StatusOK, "profile", data); err != nil {
		h.logger.Error("Failed to render profile page", zap.Error(err))
	}
}
