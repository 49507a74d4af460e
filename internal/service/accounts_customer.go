package service

import (
	"context"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/forms"

	"go.uber.org/zap"
)

// ============================================================
// Customer flows
// ============================================================

// RegisterCustomer creates a customer account. Like company registration it
// does not open a session.
func (s *AccountService) RegisterCustomer(ctx context.Context, form *forms.CustomerRegisterForm) error {
	ctx, span := accountTracer.Start(ctx, "AccountService.RegisterCustomer")
	defer span.End()

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("customer_register")
		return err
	}

	profile, err := s.api.RegisterCustomer(ctx, form.Payload())
	if err != nil {
		return err
	}

	s.logger.Info("customer registered", zap.String("customer_id", profile.ID))
	return nil
}

// UpdateCustomer patches the signed-in customer and replaces the session
// profile with the server's response.
func (s *AccountService) UpdateCustomer(ctx context.Context, form *forms.CustomerEditForm) (*domain.CustomerProfile, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.UpdateCustomer")
	defer span.End()

	customer := s.session.Customer()
	if customer == nil {
		return nil, &domain.ErrUnauthorized{Message: "Sessão de cliente necessária"}
	}

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("customer_edit")
		return nil, err
	}

	updated, err := s.api.UpdateCustomer(ctx, s.session.Token(), customer.ID, form.Payload())
	if err != nil {
		return nil, err
	}

	s.session.SetCustomerProfile(updated)
	s.logger.Info("customer updated", zap.String("customer_id", updated.ID))
	return updated, nil
}

// DeleteCustomer removes the account after the typed confirmation and ends
// the session.
func (s *AccountService) DeleteCustomer(ctx context.Context, form *forms.DeleteForm) error {
	ctx, span := accountTracer.Start(ctx, "AccountService.DeleteCustomer")
	defer span.End()

	customer := s.session.Customer()
	if customer == nil {
		return &domain.ErrUnauthorized{Message: "Sessão de cliente necessária"}
	}

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("customer_delete")
		return err
	}

	if err := s.api.DeleteCustomer(ctx, s.session.Token(), customer.ID); err != nil {
		return err
	}

	s.session.Logout()
	s.logger.Info("customer account deleted", zap.String("customer_id", customer.ID))
	return nil
}
