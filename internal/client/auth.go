package client

import (
	"context"
	"net/http"

	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/errs"
)

// Login exchanges credentials for an access token. Storing the token in
// the session store is the caller's job.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := decode[dto.AuthResponse](body, errs.KindUnknown)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errs.New(errs.KindUnknown, "no access token returned")
	}
	return resp, nil
}

// Register creates an account and returns the same envelope as Login.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return decode[dto.AuthResponse](body, errs.KindUnknown)
}
