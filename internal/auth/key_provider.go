// Package auth provides API key resolution for the FastFuels client.
package auth

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoAPIKey = errors.New("no API key configured; set FASTFUELS_API_KEY or provide one explicitly")
)

// KeyProvider supplies the api-key header value for outgoing requests.
type KeyProvider interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticKeyProvider serves a fixed API key.
type StaticKeyProvider struct {
	key string
}

// NewStaticKeyProvider creates a provider around a fixed key.
func NewStaticKeyProvider(key string) *StaticKeyProvider {
	return &StaticKeyProvider{key: key}
}

// APIKey implements KeyProvider.
func (p *StaticKeyProvider) APIKey(ctx context.Context) (string, error) {
	if p.key == "" {
		return "", ErrNoAPIKey
	}

	return p.key, nil
}

// EnvKeyProvider reads the API key from the FASTFUELS_API_KEY environment
// variable. The value is read once and reused.
type EnvKeyProvider struct {
	once sync.Once
	key  string
}

// NewEnvKeyProvider creates a provider backed by the environment.
func NewEnvKeyProvider() *EnvKeyProvider {
	return &EnvKeyProvider{}
}

// APIKey implements KeyProvider.
func (p *EnvKeyProvider) APIKey(ctx context.Context) (string, error) {
	p.once.Do(func() {
		p.key = os.Getenv(constants.APIKeyEnvVar)
	})

	if p.key == "" {
		return "", ErrNoAPIKey
	}

	return p.key, nil
}

// Resolve returns a provider for the explicit key when set, falling back to
// the environment otherwise.
func Resolve(key string) KeyProvider {
	if key != "" {
		return NewStaticKeyProvider(key)
	}

	return NewEnvKeyProvider()
}
