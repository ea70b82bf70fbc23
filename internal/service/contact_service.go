package service

import (
	"context"
	"fmt"

	"attire-rental/internal/domain"
	"attire-rental/internal/repository"
)

// ContactService handles public contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, name, email, message string) error
}

type contactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new instance of ContactService
func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(ctx context.Context, name, email, message string) error {
	msg := &domain.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to submit contact message: %w", err)
	}

	return nil
}
