package services

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/core/domain/entities/profile"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/session"
)

// ErrInvalidCredentials is returned when the API rejects a login.
var ErrInvalidCredentials = errors.New("invalid credentials")

type SignupDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthService struct {
	api      *apiclient.Client
	profiles session.ProfileCache
}

func NewAuthService(api *apiclient.Client, profiles session.ProfileCache) *AuthService {
	if profiles == nil {
		profiles = session.NopCache{}
	}
	return &AuthService{api: api, profiles: profiles}
}

// Login exchanges credentials for an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := s.api.Post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		var se *apiclient.StatusError
		if errors.As(err, &se) {
			return "", errors.Wrap(ErrInvalidCredentials, se.Error())
		}
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.Wrap(ErrInvalidCredentials, "empty access token")
	}
	return out.AccessToken, nil
}

func (s *AuthService) Signup(ctx context.Context, dto SignupDTO) error {
	return s.api.Post(ctx, "/auth/signup", dto, nil)
}

// Profile returns the profile behind token, served from the cache when fresh.
func (s *AuthService) Profile(ctx context.Context, token string) (*profile.Profile, error) {
	logger, _ := composables.TryUseLogger(ctx)
	if raw, ok, err := s.profiles.Get(ctx, token); err != nil {
		if logger != nil {
			logger.WithError(err).Warn("profile cache read failed")
		}
	} else if ok {
		p := &profile.Profile{}
		if err := json.Unmarshal(raw, p); err == nil {
			return p, nil
		}
	}

	p := &profile.Profile{}
	if err := s.api.Get(composables.WithToken(ctx, token), "/auth/profile", nil, p); err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(p); err == nil {
		if err := s.profiles.Set(ctx, token, raw); err != nil && logger != nil {
			logger.WithError(err).Warn("profile cache write failed")
		}
	}
	return p, nil
}

// Forget drops the cached profile of token.
func (s *AuthService) Forget(ctx context.Context, token string) {
	if err := s.profiles.Delete(ctx, token); err != nil {
		if logger, lerr := composables.TryUseLogger(ctx); lerr == nil {
			logger.WithError(err).Warn("profile cache delete failed")
		}
	}
}
