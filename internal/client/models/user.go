package models

// Address is the postal address attached to a profile.
type Address struct {
	Full string `json:"full"`
}

// Profile is the user record returned by the auth endpoints and cached
// alongside the session token.
type Profile struct {
	ID      ID      `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone,omitempty"`
	Role    string  `json:"role,omitempty"`
	Address Address `json:"address,omitempty"`
}

// DisplayName returns the name to greet the user with, falling back to the
// email address.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
