package client

import (
	"context"
	"net/http"
)

// AuthService calls the /auth endpoints.
type AuthService struct {
	client *Client
}

// Register creates an account and stores the issued access token on the
// client.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*TokenPair, error) {
	req := map[string]string{"email": email, "name": name, "password": password}
	var pair TokenPair
	if err := s.client.do(ctx, http.MethodPost, "/auth/register", nil, req, &pair); err != nil {
		return nil, err
	}
	s.client.SetToken(pair.AccessToken)
	return &pair, nil
}

// Login authenticates and stores the issued access token on the client.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	req := map[string]string{"email": email, "password": password}
	var pair TokenPair
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, req, &pair); err != nil {
		return nil, err
	}
	s.client.SetToken(pair.AccessToken)
	return &pair, nil
}

// Refresh exchanges a refresh token for a new token pair and stores the
// new access token on the client.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	req := map[string]string{"refresh_token": refreshToken}
	var pair TokenPair
	if err := s.client.do(ctx, http.MethodPost, "/auth/refresh", nil, req, &pair); err != nil {
		return nil, err
	}
	s.client.SetToken(pair.AccessToken)
	return &pair, nil
}

// Logout revokes the current token server-side, best effort, and always
// clears the local token. The revocation error is intentionally dropped
// because the local session must end regardless.
func (s *AuthService) Logout(ctx context.Context) {
	_ = s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	s.client.SetToken("")
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the user's name and/or email. Nil fields are
// left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, name, email *string) (*User, error) {
	req := map[string]*string{"name": name, "email": email}
	var user User
	if err := s.client.do(ctx, http.MethodPut, "/auth/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the current password and sets a new one.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	req := map[string]string{"current_password": current, "new_password": next}
	return s.client.do(ctx, http.MethodPut, "/auth/password", nil, req, nil)
}
