package service

import (
	"context"
	"errors"
	"fmt"

	"attire-rental/internal/domain"
	"attire-rental/internal/repository"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no cart
	// entries; handlers turn it into a redirect back to the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// CheckoutInput carries the contact fields submitted on the checkout form.
// They are captured on the order as-is and may diverge from the member's
// stored profile.
type CheckoutInput struct {
	FullName      string
	Address       string
	Phone         string
	PaymentMethod string
}

// CheckoutService defines the interface for order placement and lookup
type CheckoutService interface {
	// PlaceOrder creates a Pending order plus one item row per resolvable
	// cart entry, atomically.
	PlaceOrder(ctx context.Context, userID int64, input CheckoutInput, cartProductIDs []int64) (*domain.Order, error)
	// Confirmation returns the joined order detail rows; empty means the
	// order id no longer resolves.
	Confirmation(ctx context.Context, orderID int64) ([]*domain.OrderDetail, error)
	History(ctx context.Context, userID int64) ([]*domain.Order, error)
}

type checkoutService struct {
	orderRepo repository.OrderRepository
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(orderRepo repository.OrderRepository) CheckoutService {
	return &checkoutService{orderRepo: orderRepo}
}

func (s *checkoutService) PlaceOrder(ctx context.Context, userID int64, input CheckoutInput, cartProductIDs []int64) (*domain.Order, error) {
	if len(cartProductIDs) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		UserID:        userID,
		FullName:      input.FullName,
		Address:       input.Address,
		Phone:         input.Phone,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.OrderStatusPending,
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, cartProductIDs); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	return order, nil
}

func (s *checkoutService) Confirmation(ctx context.Context, orderID int64) ([]*domain.OrderDetail, error) {
	return s.orderRepo.FindDetail(ctx, orderID)
}

func (s *checkoutService) History(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
