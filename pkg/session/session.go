package session

import (
	"context"
	"encoding/json"
	"errors"
)

const (
	keyUser  = "user"
	keyToken = "token"
)

// User is the signed-in account as remembered between runs
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsStaff reports whether the user may use admin commands
func (u *User) IsStaff() bool {
	return u != nil && (u.Role == "ADMIN" || u.Role == "MANAGER")
}

// Session reads and writes the signed-in user and token
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

// User returns the stored user. Missing or corrupt data means nobody is
// signed in.
func (s *Session) User(ctx context.Context) (*User, bool) {
	raw, err := s.store.Get(ctx, keyUser)
	if err != nil {
		return nil, false
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil || user.Email == "" {
		return nil, false
	}
	return &user, true
}

// Token returns the stored bearer token or ""
func (s *Session) Token(ctx context.Context) string {
	raw, err := s.store.Get(ctx, keyToken)
	if err != nil {
		return ""
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return ""
	}
	return token
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.User(ctx)
	return ok
}

// Save stores both the user and the token
func (s *Session) Save(ctx context.Context, user User, token string) error {
	if err := s.SaveUser(ctx, user); err != nil {
		return err
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyToken, raw)
}

func (s *Session) SaveUser(ctx context.Context, user User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyUser, raw)
}

// Clear forgets the user and token
func (s *Session) Clear(ctx context.Context) error {
	return errors.Join(
		s.store.Delete(ctx, keyUser),
		s.store.Delete(ctx, keyToken),
	)
}
