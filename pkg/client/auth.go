package client

import (
	"context"
	"net/http"

	"drivehub/pkg/apiresult"
	"drivehub/pkg/session"
)

type AuthService struct {
	client *Client
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signup struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login signs in and remembers the user and access token
func (s *AuthService) Login(ctx context.Context, email, password string) apiresult.Envelope[AuthResult] {
	env := call[AuthResult](ctx, s.client, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   credentials{Email: email, Password: password},
	}, "Login failed")
	if env.Success {
		s.remember(ctx, env.Data)
	}
	return env
}

// Signup creates a customer account and signs it in
func (s *AuthService) Signup(ctx context.Context, username, email, password string) apiresult.Envelope[AuthResult] {
	env := call[AuthResult](ctx, s.client, request{
		method: http.MethodPost,
		path:   "/auth/signup",
		body:   signup{Username: username, Email: email, Password: password},
	}, "Registration failed")
	if env.Success {
		s.remember(ctx, env.Data)
	}
	return env
}

// SignupAdmin creates an admin account. The caller stays signed in as themselves.
func (s *AuthService) SignupAdmin(ctx context.Context, username, email, password string) apiresult.Envelope[AuthResult] {
	return call[AuthResult](ctx, s.client, request{
		method: http.MethodPost,
		path:   "/auth/signup/admin",
		body:   signup{Username: username, Email: email, Password: password},
	}, "Admin registration failed")
}

func (s *AuthService) SignupManager(ctx context.Context, username, email, password string) apiresult.Envelope[AuthResult] {
	return call[AuthResult](ctx, s.client, request{
		method: http.MethodPost,
		path:   "/auth/signup/manager",
		body:   signup{Username: username, Email: email, Password: password},
	}, "Manager registration failed")
}

// Logout tells the server and forgets the local session either way
func (s *AuthService) Logout(ctx context.Context) apiresult.Envelope[Empty] {
	if s.client.session.Token(ctx) != "" {
		if _, err := s.client.do(ctx, request{method: http.MethodPost, path: "/auth/logout"}); err != nil {
			s.client.log.DebugContext(ctx, "Logout request failed", "error", err.Error())
		}
	}
	if err := s.client.session.Clear(ctx); err != nil {
		return apiresult.Fail[Empty](err, "Logout failed")
	}
	return apiresult.OK(Empty{}, "Logged out successfully")
}

// Me fetches the signed-in user from the server and refreshes the stored copy
func (s *AuthService) Me(ctx context.Context) apiresult.Envelope[session.User] {
	env := call[session.User](ctx, s.client, request{method: http.MethodGet, path: "/auth/me"}, "Failed to load profile")
	if env.Success {
		if err := s.client.session.SaveUser(ctx, env.Data); err != nil {
			s.client.log.WarnContext(ctx, "Failed to persist user", "error", err.Error())
		}
	}
	return env
}

func (s *AuthService) CurrentUser(ctx context.Context) (*session.User, bool) {
	return s.client.session.User(ctx)
}

func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.client.session.IsAuthenticated(ctx)
}

func (s *AuthService) SaveUser(ctx context.Context, user session.User) error {
	return s.client.session.SaveUser(ctx, user)
}

func (s *AuthService) remember(ctx context.Context, res AuthResult) {
	if err := s.client.session.Save(ctx, res.User, res.AccessToken); err != nil {
		s.client.log.WarnContext(ctx, "Failed to persist session", "error", err.Error())
	}
}
