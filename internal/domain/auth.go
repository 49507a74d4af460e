package domain

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse is the token envelope returned by the auth endpoint.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
