package transport

import (
	"errors"
	"net/http"
	"strconv"

	"attire-rental/internal/middleware"
	"attire-rental/internal/repository"
	"attire-rental/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactRequest represents the contact form payload
type ContactRequest struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

// SiteHandler handles the public browsing pages
type SiteHandler struct {
	catalogService service.CatalogService
	contactService service.ContactService
	renderer       Renderer
	logger         *zap.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(catalogService service.CatalogService, contactService service.ContactService, renderer Renderer, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{
		catalogService: catalogService,
		contactService: contactService,
		renderer:       renderer,
		logger:         logger,
	}
}

// RegisterRoutes registers the public browsing routes
func (h *SiteHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/contact", h.ContactForm)
	r.With(rateLimit).Post("/contact", h.SubmitContact)
	r.Get("/products/model/{modelID}", h.ModelProducts)
}

// Home renders the landing page: per category, the distinct models with at
// least one product in that category.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalogService.Home(r.Context())
	if err != nil {
		h.logger.Error("Failed to load home page", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load home page")
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "Wedding Attire Rental"
	data["ThaiTraditionalDress"] = page.ThaiTraditionalDress
	data["BridalDress"] = page.BridalDress
	data["GroomSuit"] = page.GroomSuit

	if err := h.renderer.Render(w, http.StatusOK, "home", data); err != nil {
		h.logger.Error("Failed to render home page", zap.Error(err))
	}
}

// About renders the static about page.
func (h *SiteHandler) About(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "About Us"

	if err := h.renderer.Render(w, http.StatusOK, "about", data); err != nil {
		h.logger.Error("Failed to render about page", zap.Error(err))
	}
}

// ContactForm renders the contact page.
func (h *SiteHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "Contact Us"

	if err := h.renderer.Render(w, http.StatusOK, "contact", data); err != nil {
		h.logger.Error("Failed to render contact page", zap.Error(err))
	}
}

// SubmitContact stores a contact message and redirects back to the form.
func (h *SiteHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	req := ContactRequest{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	if err := middleware.ValidateRequest(req); err != nil {
		h.logger.Debug("Contact form validation failed", zap.Error(err))
		respondValidationError(w, err)
		return
	}

	if err := h.contactService.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
		h.logger.Error("Failed to submit contact message", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

// ModelProducts renders a model's detail page with every product that
// references it.
func (h *SiteHandler) ModelProducts(w http.ResponseWriter, r *http.Request) {
	modelID, err := strconv.ParseInt(chi.URLParam(r, "modelID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "model not found")
		return
	}

	page, err := h.catalogService.ModelProducts(r.Context(), modelID)
	if err != nil {
		if errors.Is(err, repository.ErrModelNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "model not found")
			return
		}
		h.logger.Error("Failed to load model products", zap.Error(err), zap.Int64("model_id", modelID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load model")
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Model"] = page.Model
	data["Products"] = page.Products

	if err := h.renderer.Render(w, http.StatusOK, "model-products", data); err != nil {
		h.logger.Error("Failed to render model products page", zap.Error(err))
	}
}
