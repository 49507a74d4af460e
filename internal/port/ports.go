package port

import (
	"context"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
)

// MarketplaceAPI is the outbound port to the Mudança Fácil REST API.
type MarketplaceAPI interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)

	CompanyMe(ctx context.Context, token string) (*domain.CompanyProfile, error)
	RegisterCompany(ctx context.Context, req *domain.CompanyRegistration) (*domain.CompanyProfile, error)
	UpdateCompany(ctx context.Context, token, id string, req *domain.CompanyUpdate) (*domain.CompanyProfile, error)
	ComplementCompany(ctx context.Context, token, id string, req *domain.CompanyComplement) (*domain.CompanyProfile, error)
	DeleteCompany(ctx context.Context, token, id string) error

	CustomerMe(ctx context.Context, token string) (*domain.CustomerProfile, error)
	RegisterCustomer(ctx context.Context, req *domain.CustomerRegistration) (*domain.CustomerProfile, error)
	UpdateCustomer(ctx context.Context, token, id string, req *domain.CustomerUpdate) (*domain.CustomerProfile, error)
	DeleteCustomer(ctx context.Context, token, id string) error
}

// StateStore persists the session keys across restarts.
type StateStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
