package service

import (
	"context"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/forms"

	"go.uber.org/zap"
)

// ============================================================
// Company flows
// ============================================================

// RegisterCompany creates a company account. Registration does not sign the
// user in; the caller sends them to the login page afterwards.
func (s *AccountService) RegisterCompany(ctx context.Context, form *forms.CompanyRegisterForm) error {
	ctx, span := accountTracer.Start(ctx, "AccountService.RegisterCompany")
	defer span.End()

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("company_register")
		return err
	}

	profile, err := s.api.RegisterCompany(ctx, form.Payload())
	if err != nil {
		return err
	}

	s.logger.Info("company registered",
		zap.String("company_id", profile.ID),
		zap.String("cnpj", form.Payload().CNPJ),
	)
	return nil
}

// UpdateCompany patches the signed-in company and replaces the session
// profile with the server's response. Nothing changes locally until the
// server confirms.
func (s *AccountService) UpdateCompany(ctx context.Context, form *forms.CompanyEditForm) (*domain.CompanyProfile, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.UpdateCompany")
	defer span.End()

	company := s.session.Company()
	if company == nil {
		return nil, &domain.ErrUnauthorized{Message: "Sessão de empresa necessária"}
	}

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("company_edit")
		return nil, err
	}

	updated, err := s.api.UpdateCompany(ctx, s.session.Token(), company.ID, form.Payload())
	if err != nil {
		return nil, err
	}

	s.session.SetCompanyProfile(updated)
	s.logger.Info("company updated", zap.String("company_id", updated.ID))
	return updated, nil
}

// ComplementCompany submits the coverage and pricing complement. On success
// the company usually moves from pending to ready-for-leads.
func (s *AccountService) ComplementCompany(ctx context.Context, form *forms.CompanyComplementForm) (*domain.CompanyProfile, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.ComplementCompany")
	defer span.End()

	company := s.session.Company()
	if company == nil {
		return nil, &domain.ErrUnauthorized{Message: "Sessão de empresa necessária"}
	}

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("company_complement")
		return nil, err
	}

	updated, err := s.api.ComplementCompany(ctx, s.session.Token(), company.ID, form.Payload())
	if err != nil {
		return nil, err
	}

	s.session.SetCompanyProfile(updated)
	s.logger.Info("company complement saved",
		zap.String("company_id", updated.ID),
		zap.String("status", updated.Status),
	)
	return updated, nil
}

// DeleteCompany removes the account after the typed confirmation and ends
// the session.
func (s *AccountService) DeleteCompany(ctx context.Context, form *forms.DeleteForm) error {
	ctx, span := accountTracer.Start(ctx, "AccountService.DeleteCompany")
	defer span.End()

	company := s.session.Company()
	if company == nil {
		return &domain.ErrUnauthorized{Message: "Sessão de empresa necessária"}
	}

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("company_delete")
		return err
	}

	if err := s.api.DeleteCompany(ctx, s.session.Token(), company.ID); err != nil {
		return err
	}

	s.session.Logout()
	s.logger.Info("company account deleted", zap.String("company_id", company.ID))
	return nil
}
