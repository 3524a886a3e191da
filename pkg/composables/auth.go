package composables

import (
	"context"
	"errors"

	"github.com/ati-intranet/portal/modules/core/domain/entities/profile"
	"github.com/ati-intranet/portal/pkg/constants"
)

var (
	ErrNoToken   = errors.New("token not found")
	ErrNoProfile = errors.New("profile not found")
)

// WithToken binds the upstream bearer token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, constants.TokenKey, token)
}

// UseToken returns the upstream bearer token bound to ctx.
func UseToken(ctx context.Context) (string, error) {
	token, ok := ctx.Value(constants.TokenKey).(string)
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func WithProfile(ctx context.Context, p *profile.Profile) context.Context {
	return context.WithValue(ctx, constants.ProfileKey, p)
}

// UseProfile returns the signed-in user's profile.
func UseProfile(ctx context.Context) (*profile.Profile, error) {
	p, ok := ctx.Value(constants.ProfileKey).(*profile.Profile)
	if !ok || p == nil {
		return nil, ErrNoProfile
	}
	return p, nil
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, id)
}

// UseRequestID returns the id assigned to the current request, or "".
func UseRequestID(ctx context.Context) string {
	id, _ := ctx.Value(constants.RequestIDKey).(string)
	return id
}
