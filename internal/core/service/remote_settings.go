package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

const remoteTokenKey = "github_token"

// TokenConfigurer is a remote tier whose credentials can change at runtime.
type TokenConfigurer interface {
	SetToken(token string)
	Configured() bool
}

// RemoteSettings persists the remote access token in the fallback store and
// applies it to the remote tier.
type RemoteSettings struct {
	remote  TokenConfigurer
	local   ports.FallbackStore
	catalog ports.CatalogService
	logger  zerolog.Logger
}

// NewRemoteSettings returns the settings manager. remote is nil when the
// configured remote driver does not authenticate with a token.
func NewRemoteSettings(remote TokenConfigurer, local ports.FallbackStore, catalog ports.CatalogService, logger zerolog.Logger) *RemoteSettings {
	return &RemoteSettings{remote: remote, local: local, catalog: catalog, logger: logger}
}

func (r *RemoteSettings) Configured() bool {
	return r.remote != nil && r.remote.Configured()
}

// Restore applies a previously saved token unless one was configured at
// startup.
func (r *RemoteSettings) Restore(ctx context.Context) error {
	if r.remote == nil || r.remote.Configured() {
		return nil
	}
	raw, err := r.local.Get(ctx, remoteTokenKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore remote token: %w", err)
	}
	r.remote.SetToken(string(raw))
	r.logger.Info().Msg("remote token restored from fallback store")
	return nil
}

// SetToken saves and applies token, then reloads every collection from the
// newly reachable remote.
func (r *RemoteSettings) SetToken(ctx context.Context, token string) error {
	if r.remote == nil {
		return fmt.Errorf("%w: remote driver does not use an access token", domain.ErrValidation)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrValidation)
	}
	if err := r.local.Set(ctx, remoteTokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save remote token: %w", err)
	}
	r.remote.SetToken(token)
	r.logger.Info().Msg("remote token updated")
	return r.catalog.Refresh(ctx)
}

// ClearToken forgets the token. Subsequent writes go to the fallback store.
func (r *RemoteSettings) ClearToken(ctx context.Context) error {
	if r.remote == nil {
		return fmt.Errorf("%w: remote driver does not use an access token", domain.ErrValidation)
	}
	if err := r.local.Delete(ctx, remoteTokenKey); err != nil {
		return fmt.Errorf("delete remote token: %w", err)
	}
	r.remote.SetToken("")
	r.logger.Info().Msg("remote token cleared")
	return nil
}
