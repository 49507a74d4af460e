package client

import (
	"context"
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// CompanyMe fetches the company profile bound to the token.
func (c *API) CompanyMe(ctx context.Context, token string) (*domain.CompanyProfile, error) {
	ctx, span := tracer.Start(ctx, "API.CompanyMe")
	defer span.End()

	var profile domain.CompanyProfile
	if err := c.do(ctx, "company_me", http.MethodGet, "/empresas/me", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RegisterCompany creates a company account via POST /empresas.
func (c *API) RegisterCompany(ctx context.Context, req *domain.CompanyRegistration) (*domain.CompanyProfile, error) {
	ctx, span := tracer.Start(ctx, "API.RegisterCompany")
	defer span.End()

	var profile domain.CompanyProfile
	if err := c.do(ctx, "company_register", http.MethodPost, "/empresas", "", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateCompany applies a partial update and returns the fresh profile.
func (c *API) UpdateCompany(ctx context.Context, token, id string, req *domain.CompanyUpdate) (*domain.CompanyProfile, error) {
	ctx, span := tracer.Start(ctx, "API.UpdateCompany")
	defer span.End()
	span.SetAttributes(attribute.String("company.id", id))

	var profile domain.CompanyProfile
	if err := c.do(ctx, "company_update", http.MethodPatch, "/empresas/"+id, token, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ComplementCompany sends the coverage/pricing complement as a partial update.
func (c *API) ComplementCompany(ctx context.Context, token, id string, req *domain.CompanyComplement) (*domain.CompanyProfile, error) {
	ctx, span := tracer.Start(ctx, "API.ComplementCompany")
	defer span.End()
	span.SetAttributes(attribute.String("company.id", id))

	var profile domain.CompanyProfile
	if err := c.do(ctx, "company_complement", http.MethodPatch, "/empresas/"+id, token, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteCompany removes the company account.
func (c *API) DeleteCompany(ctx context.Context, token, id string) error {
	ctx, span := tracer.Start(ctx, "API.DeleteCompany")
	defer span.End()
	span.SetAttributes(attribute.String("company.id", id))

	return c.do(ctx, "company_delete", http.MethodDelete, "/empresas/"+id, token, nil, nil)
}
