package transport

import (
	"errors"
	"net/http"
	"strconv"

	"attire-rental/internal/domain"
	"attire-rental/internal/middleware"
	"attire-rental/internal/repository"
	"attire-rental/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadBytes bounds multipart form memory for image uploads.
const maxUploadBytes = 10 << 20

// ProductFormRequest represents the admin product form payload
type ProductFormRequest struct {
	Name     string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	Category string  `validate:"required"`
}

// AdminHandler handles the catalog management console
type AdminHandler struct {
	adminService service.AdminService
	renderer     Renderer
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, renderer Renderer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		renderer:     renderer,
		logger:       logger,
	}
}

// RegisterRoutes registers the admin console routes under /admin
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/add-product", h.AddProductForm)
		r.Post("/add-product", h.AddProduct)
		r.Get("/add-model", h.AddModelForm)
		r.Post("/add-model", h.AddModel)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/manageProducts", h.ManageProducts)
		r.Get("/edit-product/{id}", h.EditProductForm)
		r.Post("/edit-product/{id}", h.EditProduct)
		r.Get("/delete-product/{id}", h.DeleteProductForm)
		r.Post("/delete-product/{id}", h.DeleteProduct)
		r.Get("/manage-messages", h.ManageMessages)
	})
}

// AddProductForm renders the add-product page with the model list for the
// form select.
func (h *AdminHandler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	models, err := h.adminService.Models(r.Context())
	if err != nil {
		h.logger.Error("Failed to load models", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load models")
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Models"] = models

	if err := h.renderer.Render(w, http.StatusOK, "admin-add-product", data); err != nil {
		h.logger.Error("Failed to render add product page", zap.Error(err))
	}
}

// AddProduct stores the uploaded image and inserts the product row.
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	input, upload, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.adminService.AddProduct(r.Context(), input, upload)
	if err != nil {
		h.logger.Error("Failed to add product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	h.logger.Info("Product added", zap.Int64("product_id", product.ID))
	http.Redirect(w, r, "/admin/manageProducts", http.StatusSeeOther)
}

// AddModelForm renders the add-model page.
func (h *AdminHandler) AddModelForm(w http.ResponseWriter, r *http.Request) {
	state, _ := sessionState(r)

	if err := h.renderer.Render(w, http.StatusOK, "admin-add-model", pageData(r, state)); err != nil {
		h.logger.Error("Failed to render add model page", zap.Error(err))
	}
}

// AddModel stores the uploaded image under the fixed models directory and
// inserts the model row.
func (h *AdminHandler) AddModel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid form")
		return
	}

	name := r.FormValue("modelName")
	if name == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "model name is required")
		return
	}

	var upload *service.Upload
	if file, header, err := r.FormFile("modelImage"); err == nil {
		defer file.Close()
		upload = &service.Upload{Filename: header.Filename, File: file}
	}

	model, err := h.adminService.AddModel(r.Context(), name, upload)
	if err != nil {
		h.logger.Error("Failed to add model", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add model")
		return
	}

	h.logger.Info("Model added", zap.Int64("model_id", model.ID))
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Dashboard renders product listings and models.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	listings, err := h.adminService.ProductListings(r.Context())
	if err != nil {
		h.logger.Error("Failed to load product listings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	models, err := h.adminService.Models(r.Context())
	if err != nil {
		h.logger.Error("Failed to load models", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "Admin Dashboard"
	data["Products"] = listings
	data["Models"] = models

	if err := h.renderer.Render(w, http.StatusOK, "admin-dashboard", data); err != nil {
		h.logger.Error("Failed to render dashboard", zap.Error(err))
	}
}

// ManageProducts renders the product list joined with model names.
func (h *AdminHandler) ManageProducts(w http.ResponseWriter, r *http.Request) {
	listings, err := h.adminService.ProductListings(r.Context())
	if err != nil {
		h.logger.Error("Failed to load product listings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "Products List"
	data["Products"] = listings

	if err := h.renderer.Render(w, http.StatusOK, "admin-manage-products", data); err != nil {
		h.logger.Error("Failed to render products list", zap.Error(err))
	}
}

// EditProductForm renders the edit page for an existing product.
func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	models, err := h.adminService.Models(r.Context())
	if err != nil {
		h.logger.Error("Failed to load models", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load models")
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Product"] = product
	data["Models"] = models

	if err := h.renderer.Render(w, http.StatusOK, "admin-edit-product", data); err != nil {
		h.logger.Error("Failed to render edit product page", zap.Error(err))
	}
}

// EditProduct audits and applies a product update. A freshly uploaded image
// replaces the stored reference; otherwise the submitted existingImage
// value is kept as-is.
func (h *AdminHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	input, upload, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}
	existingImage := r.FormValue("existingImage")

	err = h.adminService.UpdateProduct(r.Context(), productID, input, upload, existingImage)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err), zap.Int64("product_id", productID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", productID))
	http.Redirect(w, r, "/admin/manageProducts", http.StatusSeeOther)
}

// DeleteProductForm renders the delete confirmation page.
func (h *AdminHandler) DeleteProductForm(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Product"] = product

	if err := h.renderer.Render(w, http.StatusOK, "admin-delete-product", data); err != nil {
		h.logger.Error("Failed to render delete product page", zap.Error(err))
	}
}

// DeleteProduct snapshots the product into the audit table and removes it.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.adminService.DeleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err), zap.Int64("product_id", productID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", productID))
	http.Redirect(w, r, "/admin/manageProducts", http.StatusSeeOther)
}

// ManageMessages renders the contact inbox, newest first.
func (h *AdminHandler) ManageMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.adminService.Messages(r.Context())
	if err != nil {
		h.logger.Error("Failed to load contact messages", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}

	state, _ := sessionState(r)
	data := pageData(r, state)
	data["Title"] = "Manage Contact Messages"
	data["Messages"] = messages

	if err := h.renderer.Render(w, http.StatusOK, "admin-manage-messages", data); err != nil {
		h.logger.Error("Failed to render messages page", zap.Error(err))
	}
}

func (h *AdminHandler) loadProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return nil, false
	}

	product, err := h.adminService.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return nil, false
		}
		h.logger.Error("Failed to load product", zap.Error(err), zap.Int64("product_id", productID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return nil, false
	}

	return product, true
}

// parseProductForm reads the shared add/edit product multipart form. The
// optional image upload is returned as nil when absent.
func (h *AdminHandler) parseProductForm(w http.ResponseWriter, r *http.Request) (service.ProductInput, *service.Upload, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid form")
		return service.ProductInput{}, nil, false
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid price")
		return service.ProductInput{}, nil, false
	}

	req := ProductFormRequest{
		Name:     r.FormValue("productName"),
		Price:    price,
		Category: r.FormValue("category"),
	}
	if err := middleware.ValidateRequest(req); err != nil {
		h.logger.Debug("Product form validation failed", zap.Error(err))
		respondValidationError(w, err)
		return service.ProductInput{}, nil, false
	}

	input := service.ProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: domain.Category(req.Category),
	}

	if modelID, err := strconv.ParseInt(r.FormValue("modelId"), 10, 64); err == nil {
		input.ModelID = &modelID
	}

	// The multipart file is cleaned up by net/http when the request ends,
	// so it stays open for the caller.
	var upload *service.Upload
	if file, header, err := r.FormFile("productImage"); err == nil {
		upload = &service.Upload{Filename: header.Filename, File: file}
	}

	return input, upload, true
}
