package api

import (
	"context"
	"net/http"
)

// RegisterRequest is the signup payload. The doctor-only fields are omitted
// for patient accounts.
type RegisterRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	Phone         string `json:"phone,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
	Experience    int    `json:"experience,omitempty"`
	Fees          int    `json:"fees,omitempty"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthUser is the authenticated identity the backend returns on login and
// verify. Token is present on login responses only.
type AuthUser struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token,omitempty"`
}

// AuthClient covers registration, login and token verification.
type AuthClient struct {
	*Config
}

// Register creates an account. The backend does not sign the user in; call
// Login afterwards.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, registerPath, nil, req, nil)
}

type loginResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// Login exchanges credentials for a bearer token and the user identity.
func (c *AuthClient) Login(ctx context.Context, req LoginRequest) (AuthUser, error) {
	var res loginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, nil, req, &res); err != nil {
		return AuthUser{}, err
	}
	user := res.User
	if user.Token == "" {
		user.Token = res.Token
	}
	return user, nil
}

// Verify checks the configured token against the backend and returns the
// identity it resolves to. The response is the user object itself, not an
// envelope.
func (c *AuthClient) Verify(ctx context.Context) (AuthUser, error) {
	var user AuthUser
	if err := c.do(ctx, http.MethodGet, verifyPath, nil, nil, &user); err != nil {
		return AuthUser{}, err
	}
	return user, nil
}
