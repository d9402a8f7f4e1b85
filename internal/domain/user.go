package domain

import "time"

// Role constants define the allowed user roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Photo is an uploaded profile picture reference.
type Photo struct {
	Filename   string    `json:"filename"`
	FilePath   string    `json:"filePath"`
	PublicID   string    `json:"publicId"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// User represents a registered user of the blog platform, as returned by
// the identity endpoint.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	EmailVerified  bool      `json:"emailVerified"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture *Photo    `json:"profilePicture,omitempty"`
	OAuthProvider  string    `json:"oauthProvider,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// TokenPair holds an access and refresh token pair. The two are always
// stored and cleared together.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Valid reports whether both tokens are present. A pair with exactly one
// token present violates the session invariant and is treated as malformed.
func (t TokenPair) Valid() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// Empty reports whether neither token is present.
func (t TokenPair) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}
