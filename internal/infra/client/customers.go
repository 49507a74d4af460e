package client

import (
	"context"
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// CustomerMe fetches the customer profile bound to the token.
func (c *API) CustomerMe(ctx context.Context, token string) (*domain.CustomerProfile, error) {
	ctx, span := tracer.Start(ctx, "API.CustomerMe")
	defer span.End()

	var profile domain.CustomerProfile
	if err := c.do(ctx, "customer_me", http.MethodGet, "/clientes/me", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RegisterCustomer creates a customer account via POST /clientes.
func (c *API) RegisterCustomer(ctx context.Context, req *domain.CustomerRegistration) (*domain.CustomerProfile, error) {
	ctx, span := tracer.Start(ctx, "API.RegisterCustomer")
	defer span.End()

	var profile domain.CustomerProfile
	if err := c.do(ctx, "customer_register", http.MethodPost, "/clientes", "", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateCustomer applies a partial update and returns the fresh profile.
func (c *API) UpdateCustomer(ctx context.Context, token, id string, req *domain.CustomerUpdate) (*domain.CustomerProfile, error) {
	ctx, span := tracer.Start(ctx, "API.UpdateCustomer")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", id))

	var profile domain.CustomerProfile
	if err := c.do(ctx, "customer_update", http.MethodPatch, "/clientes/"+id, token, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteCustomer removes the customer account.
func (c *API) DeleteCustomer(ctx context.Context, token, id string) error {
	ctx, span := tracer.Start(ctx, "API.DeleteCustomer")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", id))

	return c.do(ctx, "customer_delete", http.MethodDelete, "/clientes/"+id, token, nil, nil)
}
