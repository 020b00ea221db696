// Package models defines the client-side data model of the blog client:
// the session, the user profile, blog drafts and request payloads.
package models

import "encoding/json"

// User is the profile record returned by the backend. Decoding is lenient:
// unknown fields are ignored and the id may arrive as "id" or "_id".
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UnmarshalJSON accepts both "id" and Mongo-style "_id".
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// DisplayName picks the friendliest non-empty identifier.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what POST /api/auth/login returns on success.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// MeResponse is what GET /api/auth/me returns.
type MeResponse struct {
	User *User `json:"user"`
}
