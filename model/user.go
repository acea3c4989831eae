package model

import "encoding/json"

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"

	// The backend answers /auth/me with this pseudo-identity when no
	// session cookie is present.
	anonymousEmail = "anonymousUser"
)

// User is the client-side snapshot of the server session.
type User struct {
	Id    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Roles RoleSet `json:"roles"`
}

// Authenticated reports whether the snapshot represents a real session.
func (u User) Authenticated() bool {
	return u.Email != "" && u.Email != anonymousEmail
}

func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// RoleSet normalizes the three shapes the backend uses for roles: a single
// string, a list of strings, or a list of {"authority": "..."} objects.
// Everything downstream only ever sees a flat string slice.
type RoleSet []string

func (rs *RoleSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*rs = RoleSet{single}
		}
		return nil
	}

	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*rs = RoleSet(plain)
		return nil
	}

	var granted []struct {
		Authority string `json:"authority"`
	}
	if err := json.Unmarshal(data, &granted); err != nil {
		return err
	}
	out := make(RoleSet, 0, len(granted))
	for _, g := range granted {
		if g.Authority != "" {
			out = append(out, g.Authority)
		}
	}
	*rs = out
	return nil
}
