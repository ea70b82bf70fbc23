package service

import (
	"context"
	"fmt"

	"attire-rental/internal/domain"
	"attire-rental/internal/repository"
)

// HomePage groups, per fixed category, the distinct models that have at
// least one product in that category.
type HomePage struct {
	ThaiTraditionalDress []*domain.Model
	BridalDress          []*domain.Model
	GroomSuit            []*domain.Model
}

// ModelPage is a model together with every product referencing it,
// regardless of category.
type ModelPage struct {
	Model    *domain.Model
	Products []*domain.Product
}

// CatalogService defines the interface for public catalog browsing
type CatalogService interface {
	Home(ctx context.Context) (*HomePage, error)
	ModelProducts(ctx context.Context, modelID int64) (*ModelPage, error)
}

type catalogService struct {
	modelRepo   repository.ModelRepository
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(modelRepo repository.ModelRepository, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		modelRepo:   modelRepo,
		productRepo: productRepo,
	}
}

// Home resolves the three category sections of the home page.
func (s *catalogService) Home(ctx context.Context) (*HomePage, error) {
	page := &HomePage{}

	sections := []struct {
		category domain.Category
		dest     *[]*domain.Model
	}{
		{domain.CategoryThaiTraditionalDress, &page.ThaiTraditionalDress},
		{domain.CategoryBridalDress, &page.BridalDress},
		{domain.CategoryGroomSuit, &page.GroomSuit},
	}

	for _, section := range sections {
		models, err := s.modelRepo.ListByCategory(ctx, section.category)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s models: %w", section.category, err)
		}
		*section.dest = models
	}

	return page, nil
}

// ModelProducts loads a model and all of its products. Returns
// repository.ErrModelNotFound when no model matches.
func (s *catalogService) ModelProducts(ctx context.Context, modelID int64) (*ModelPage, error) {
	model, err := s.modelRepo.FindByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListByModel(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load model products: %w", err)
	}

	return &ModelPage{Model: model, Products: products}, nil
}
