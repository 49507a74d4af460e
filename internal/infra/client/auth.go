package client

import (
	"context"
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
)

// Login exchanges credentials for an access token via POST /auth/login.
func (c *API) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := tracer.Start(ctx, "API.Login")
	defer span.End()

	var resp domain.LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &domain.ErrUnauthorized{Message: "Credenciais inválidas"}
	}
	return &resp, nil
}
