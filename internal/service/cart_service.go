package service

import (
	"context"
	"fmt"

	"attire-rental/internal/domain"
	"attire-rental/internal/repository"
)

// CartService resolves the session cart to product rows for display.
type CartService interface {
	// View maps each cart entry to its product row, in cart order.
	// Entries whose product no longer exists are silently dropped;
	// duplicate entries stay separate lines. An empty cart returns
	// immediately without touching the database.
	View(ctx context.Context, cartProductIDs []int64) ([]*domain.Product, error)
}

type cartService struct {
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(productRepo repository.ProductRepository) CartService {
	return &cartService{productRepo: productRepo}
}

func (s *cartService) View(ctx context.Context, cartProductIDs []int64) ([]*domain.Product, error) {
	if len(cartProductIDs) == 0 {
		return []*domain.Product{}, nil
	}

	products, err := s.productRepo.ListByIDs(ctx, cartProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	entries := []*domain.Product{}
	for _, id := range cartProductIDs {
		if p, ok := byID[id]; ok {
			entries = append(entries, p)
		}
	}

	return entries, nil
}
