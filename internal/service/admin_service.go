package service

import (
	"context"
	"fmt"
	"io"

	"attire-rental/internal/domain"
	"attire-rental/internal/repository"
)

// ImageStore is the file-storage collaborator for uploaded images.
type ImageStore interface {
	Save(subdir, originalFilename string, src io.Reader) (string, error)
}

// Upload is an optional uploaded image file.
type Upload struct {
	Filename string
	File     io.Reader
}

// ProductInput carries the admin product form fields.
type ProductInput struct {
	Name     string
	Price    float64
	Category domain.Category
	ModelID  *int64
}

// AdminService defines the interface for catalog management
type AdminService interface {
	AddProduct(ctx context.Context, input ProductInput, image *Upload) (*domain.Product, error)
	AddModel(ctx context.Context, name string, image *Upload) (*domain.Model, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	Models(ctx context.Context) ([]*domain.Model, error)
	ProductListings(ctx context.Context) ([]*domain.ProductListing, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput, image *Upload, existingImage string) error
	DeleteProduct(ctx context.Context, id int64) error
	Messages(ctx context.Context) ([]*domain.ContactMessage, error)
}

type adminService struct {
	productRepo repository.ProductRepository
	modelRepo   repository.ModelRepository
	contactRepo repository.ContactRepository
	images      ImageStore
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(
	productRepo repository.ProductRepository,
	modelRepo repository.ModelRepository,
	contactRepo repository.ContactRepository,
	images ImageStore,
) AdminService {
	return &adminService{
		productRepo: productRepo,
		modelRepo:   modelRepo,
		contactRepo: contactRepo,
		images:      images,
	}
}

// AddProduct stores the uploaded image under a category-named directory and
// inserts the product row referencing it.
func (s *adminService) AddProduct(ctx context.Context, input ProductInput, image *Upload) (*domain.Product, error) {
	imageURL := ""
	if image != nil {
		url, err := s.images.Save(string(input.Category), image.Filename, image.File)
		if err != nil {
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		imageURL = url
	}

	product := &domain.Product{
		Name:     input.Name,
		ImageURL: imageURL,
		Price:    input.Price,
		Category: input.Category,
		ModelID:  input.ModelID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// AddModel stores the uploaded image under the fixed models directory and
// inserts the model row.
func (s *adminService) AddModel(ctx context.Context, name string, image *Upload) (*domain.Model, error) {
	imageURL := ""
	if image != nil {
		url, err := s.images.Save("models", image.Filename, image.File)
		if err != nil {
			return nil, fmt.Errorf("failed to store model image: %w", err)
		}
		imageURL = url
	}

	model := &domain.Model{Name: name, ImageURL: imageURL}
	if err := s.modelRepo.Create(ctx, model); err != nil {
		return nil, err
	}

	return model, nil
}

func (s *adminService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *adminService) Models(ctx context.Context) ([]*domain.Model, error) {
	return s.modelRepo.List(ctx)
}

func (s *adminService) ProductListings(ctx context.Context) ([]*domain.ProductListing, error) {
	return s.productRepo.ListWithModel(ctx)
}

// UpdateProduct loads the live row, decides the image reference (a new
// upload wins; otherwise the client-supplied existing value is trusted
// verbatim), then writes the audit row and the update atomically.
func (s *adminService) UpdateProduct(ctx context.Context, id int64, input ProductInput, image *Upload, existingImage string) error {
	old, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	imageURL := existingImage
	if image != nil {
		url, err := s.images.Save(string(input.Category), image.Filename, image.File)
		if err != nil {
			return fmt.Errorf("failed to store product image: %w", err)
		}
		imageURL = url
	}

	updated := &domain.Product{
		ID:       old.ID,
		Name:     input.Name,
		ImageURL: imageURL,
		Price:    input.Price,
		Category: input.Category,
		ModelID:  input.ModelID,
	}

	return s.productRepo.UpdateWithAudit(ctx, old, updated)
}

// DeleteProduct snapshots the live row into deleted_products and removes
// it, atomically.
func (s *adminService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return s.productRepo.DeleteWithAudit(ctx, product)
}

func (s *adminService) Messages(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}
