package api

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-budget-console/session"
	"github.com/jrsteele09/go-budget-console/users"
	"golang.org/x/oauth2"
)

// Endpoint paths, relative to the API base URL
const (
	PathAuthLogin = "/auth/login"
	PathAuthMe    = "/auth/me"
	PathAuthUsers = "/auth/users"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries access_token and token_type on the wire
type LoginResponse struct {
	oauth2.Token
	User users.Profile `json:"user"`
}

var _ session.Authenticator = (*AuthAPI)(nil)

// AuthAPI wraps the authentication and user management endpoints
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.client.Post(ctx, PathAuthLogin, LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Authenticate implements session.Authenticator
func (a *AuthAPI) Authenticate(ctx context.Context, username, password string) (session.Credentials, error) {
	resp, err := a.Login(ctx, username, password)
	if err != nil {
		return session.Credentials{}, err
	}
	return session.Credentials{Token: resp.AccessToken, User: resp.User}, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*users.Profile, error) {
	var p users.Profile
	if err := a.client.Get(ctx, PathAuthMe, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *AuthAPI) ListUsers(ctx context.Context) ([]users.Profile, error) {
	var list []users.Profile
	if err := a.client.Get(ctx, PathAuthUsers, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *AuthAPI) CreateUser(ctx context.Context, req users.CreateRequest) (*users.Profile, error) {
	var p users.Profile
	if err := a.client.Post(ctx, PathAuthUsers, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *AuthAPI) UpdateUser(ctx context.Context, id int, req users.UpdateRequest) (*users.Profile, error) {
	var p users.Profile
	if err := a.client.Put(ctx, fmt.Sprintf("%s/%d", PathAuthUsers, id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
