package api

import (
	"context"
	"io"
	"net/http"

	"github.com/utafrali/BlogGo/internal/domain"
)

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse is the payload returned by login, register, and refresh.
type AuthResponse struct {
	User         domain.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// UpdateProfileRequest is the payload for PUT /users/profile.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=30"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "login", "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and returns its first session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "register", "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the server that the session ended. The access token is
// passed explicitly because the session store clears its local state before
// this call is made; best-effort, the store ignores the outcome.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, nil, accessToken)
}

// Refresh exchanges a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.post(ctx, "refresh", "/auth/refresh", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the identity of the current session.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "profile", "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the current user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	var user domain.User
	if err := c.put(ctx, "update_profile", "/users/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadProfilePicture sends a new profile picture as the multipart field
// the server expects and returns the updated user. The server enforces the
// size and type limits; callers pre-check them for a friendlier error.
func (c *Client) UploadProfilePicture(ctx context.Context, filename string, picture io.Reader) (*domain.User, error) {
	var user domain.User
	if err := c.upload(ctx, "upload_profile_picture", "/users/profile/picture", "profile_picture", filename, picture, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
