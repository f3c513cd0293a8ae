package domain

import (
	"fmt"
	"time"
)

// UserType is the closed set of roles a storefront user can hold.
type UserType string

const (
	UserTypeAdmin      UserType = "admin"
	UserTypeStore      UserType = "loja"
	UserTypeRestaurant UserType = "restaurante"
)

// UserTypes lists every role in display order.
var UserTypes = []UserType{UserTypeAdmin, UserTypeStore, UserTypeRestaurant}

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeStore, UserTypeRestaurant:
		return true
	}
	return false
}

// IsBuyer reports whether t is a purchasing role (store or restaurant).
func (t UserType) IsBuyer() bool {
	return t == UserTypeStore || t == UserTypeRestaurant
}

// ParseUserType converts a raw role string into a UserType.
func ParseUserType(s string) (UserType, error) {
	t := UserType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUserType, s)
	}
	return t, nil
}

// User models an account stored in the users collection. Password holds
// either a bcrypt hash or, for seeded demo accounts, the plain secret.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Type      UserType  `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the record persisted for an authenticated user.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session lapsed before now. A zero ExpiresAt
// never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
