package session

import (
	"context"
	"log/slog"

	"github.com/ylchen07/smart-secrets/pkg/models"
)

// Lister lists the secrets of a store. provider.Provider satisfies it.
type Lister interface {
	ListSecrets(ctx context.Context) ([]models.SecretSummary, error)
}

// Fetcher retrieves one raw secret value. provider.Provider satisfies it.
type Fetcher interface {
	GetSecretValue(ctx context.Context, id string) (string, error)
}

// Option configures a Catalog or a Registry
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger. Secret values are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
