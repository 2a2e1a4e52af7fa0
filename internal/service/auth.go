package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flicky/go-storefront/internal/api"
	"github.com/flicky/go-storefront/internal/dto"
	"github.com/flicky/go-storefront/internal/model"
)

const (
	msgUserNotFound = "user not found, consider registering"
	msgInvalidData  = "invalid data, check your information"
	msgNetwork      = "network error, check your connection"
	msgLoginRetry   = "login failed, please try again"
)

// SessionWriter is the slice of the session store auth mutates.
type SessionWriter interface {
	Login(token string, user model.User)
	Logout()
}

type AuthResult struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
}

// AuthService drives the login/register/validate flows and keeps the
// session store in sync with their outcomes.
type AuthService struct {
	client  *api.Client
	session SessionWriter
}

func NewAuthService(client *api.Client, session SessionWriter) *AuthService {
	return &AuthService{client: client, session: session}
}

// Login authenticates against the backend and stores the returned
// credentials. Failure statuses map to user-facing guidance: a 401 or 404
// means the account likely does not exist yet.
func (s *AuthService) Login(ctx context.Context, username, password string) AuthResult {
	envelope, err := s.client.Post(ctx, "/auth/login", dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return AuthResult{Message: loginFailureMessage(err)}
	}

	auth, err := decodeAuthData(envelope)
	if err != nil {
		return AuthResult{Message: envelopeMessage(envelope, msgLoginRetry)}
	}

	user := userFromPayload(auth.User)
	if user.Username == "" {
		user.Username = username
	}
	s.session.Login(auth.Token, user)
	return AuthResult{Success: true, User: &user}
}

// Register creates an account. When the backend answers with credentials,
// the new user is logged in immediately.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) AuthResult {
	envelope, err := s.client.Post(ctx, "/auth/register", req)
	if err != nil {
		return AuthResult{Message: loginFailureMessage(err)}
	}
	if !envelope.Success {
		return AuthResult{Message: envelopeMessage(envelope, "registration failed")}
	}

	if auth, err := decodeAuthData(envelope); err == nil {
		user := userFromPayload(auth.User)
		s.session.Login(auth.Token, user)
		return AuthResult{Success: true, User: &user}
	}
	return AuthResult{Success: true}
}

// Me validates the current token against the backend. A 401 demotes the
// session to logged-out.
func (s *AuthService) Me(ctx context.Context) AuthResult {
	envelope, err := s.client.Get(ctx, "/auth/me", nil)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			s.session.Logout()
			return AuthResult{Message: "session expired"}
		}
		return AuthResult{Message: loginFailureMessage(err)}
	}
	if !envelope.Success {
		return AuthResult{Message: envelopeMessage(envelope, "session invalid")}
	}

	var payload dto.UserPayload
	if len(envelope.Data) > 0 && json.Unmarshal(envelope.Data, &payload) == nil {
		user := userFromPayload(payload)
		return AuthResult{Success: true, User: &user}
	}
	return AuthResult{Success: true}
}

func decodeAuthData(envelope *dto.Envelope) (*dto.AuthData, error) {
	if !envelope.Success || len(envelope.Data) == 0 {
		return nil, errEmptyData
	}
	var auth dto.AuthData
	if err := json.Unmarshal(envelope.Data, &auth); err != nil {
		return nil, err
	}
	if auth.Token == "" {
		return nil, errEmptyData
	}
	return &auth, nil
}

func userFromPayload(p dto.UserPayload) model.User {
	return model.User{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

func loginFailureMessage(err error) string {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, api.ErrNetwork):
		return msgNetwork
	case errors.As(err, &statusErr):
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusNotFound:
			return msgUserNotFound
		case http.StatusBadRequest:
			return msgInvalidData
		default:
			return msgLoginRetry
		}
	default:
		return msgLoginRetry
	}
}
