package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/logger"
)

// Config points the gateway at a Supabase project.
type Config struct {
	URL         string // https://<ref>.supabase.co, no trailing slash
	AnonKey     string
	RedirectURL string // email confirmation landing page
}

type authGateway struct {
	cfg    Config
	client *http.Client
}

func NewAuthGateway(cfg Config, client *http.Client) domain.AuthGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &authGateway{cfg: cfg, client: client}
}

type gotrueUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// gotrueSession covers both shapes GoTrue returns from /signup: a session
// with a nested user, or a bare user awaiting confirmation.
type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         *gotrueUser `json:"user"`
	gotrueUser
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	default:
		return e.Message
	}
}

func (g *authGateway) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*domain.AuthSession, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     metadata,
	}
	path := "/auth/v1/signup"
	if g.cfg.RedirectURL != "" {
		path += "?redirect_to=" + url.QueryEscape(g.cfg.RedirectURL)
	}

	var out gotrueSession
	status, errBody, err := g.do(ctx, http.MethodPost, path, "", body, &out)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Registration service unavailable", err)
	}
	if status >= 400 {
		msg := errBody.text()
		if msg == "" {
			msg = "Registration failed"
		}
		if status == http.StatusUnprocessableEntity || status == http.StatusConflict {
			return nil, apperror.Conflict(msg)
		}
		return nil, apperror.BadRequest(msg)
	}
	return out.toDomain(), nil
}

func (g *authGateway) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	var out gotrueSession
	status, errBody, err := g.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", map[string]interface{}{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Login service unavailable", err)
	}
	if status >= 400 {
		// Keep the message generic unless the account just needs confirming.
		msg := "Wrong email or password"
		if m := errBody.text(); m == "Email not confirmed" {
			msg = m
		}
		return nil, apperror.Unauthorized(msg)
	}
	return out.toDomain(), nil
}

func (g *authGateway) SignOut(ctx context.Context, accessToken string) error {
	status, errBody, err := g.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		return apperror.New(http.StatusBadGateway, "Logout service unavailable", err)
	}
	// 401 means the token is already dead, which is what logout wants.
	if status >= 400 && status != http.StatusUnauthorized {
		return apperror.New(http.StatusBadGateway, "Logout failed", fmt.Errorf("gotrue %d: %s", status, errBody.text()))
	}
	return nil
}

func (g *authGateway) do(ctx context.Context, method, path, bearer string, body interface{}, out interface{}) (int, gotrueError, error) {
	var errBody gotrueError

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, errBody, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.URL+path, reader)
	if err != nil {
		return 0, errBody, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", g.cfg.AnonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, errBody, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		logger.Log.Warn("Auth service error", "path", path, "status", resp.StatusCode, "message", errBody.text())
		return resp.StatusCode, errBody, nil
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, errBody, fmt.Errorf("decode auth response: %w", err)
		}
	}
	return resp.StatusCode, errBody, nil
}

func (s *gotrueSession) toDomain() *domain.AuthSession {
	u := s.User
	if u == nil {
		u = &s.gotrueUser
	}
	out := &domain.AuthSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		UserID:       u.ID,
		Email:        u.Email,
	}
	out.UserType, _ = u.UserMetadata["user_type"].(string)
	out.FullName, _ = u.UserMetadata["full_name"].(string)
	return out
}
