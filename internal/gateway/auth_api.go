package gateway

import (
	"context"
	"net/http"

	"artizon/internal/models"
)

// AuthAPI groups the authentication endpoints.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates a new AuthAPI over the given gateway client.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{
		client: client,
	}
}

// Login exchanges credentials for an access token.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*models.AuthSession, error) {
	var session models.AuthSession
	err := a.client.RequestJSON(ctx, "/auth/login", Options{
		Method: http.MethodPost,
		Body:   models.LoginRequest{Email: email, Password: password},
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Signup registers a new vendor or customer account.
func (a *AuthAPI) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	var user models.User
	err := a.client.RequestJSON(ctx, "/auth/signup", Options{
		Method: http.MethodPost,
		Body:   req,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the signed-in account's profile.
func (a *AuthAPI) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	err := a.client.RequestJSON(ctx, "/auth/profile", Options{
		RequiresAuth: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
