package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ylchen07/smart-secrets/pkg/models"
)

// Catalog is the ordered list of secrets last fetched from the store.
type Catalog struct {
	client Lister
	logger *slog.Logger

	mu      sync.RWMutex
	secrets []models.SecretSummary
}

// NewCatalog creates an empty catalog backed by client
func NewCatalog(client Lister, opts ...Option) *Catalog {
	o := buildOptions(opts)
	return &Catalog{
		client:  client,
		logger:  o.logger,
		secrets: []models.SecretSummary{},
	}
}

// Refresh lists the store and replaces the catalog wholesale. On failure the
// previous contents are kept.
func (c *Catalog) Refresh(ctx context.Context) ([]models.SecretSummary, error) {
	secrets, err := c.client.ListSecrets(ctx)
	if err != nil {
		c.logger.Warn("catalog refresh failed", "error", err)
		return nil, &UpstreamError{Op: OpListSecrets, Err: err}
	}

	for i, s := range secrets {
		if s.ID == "" {
			err := fmt.Errorf("%w: entry %d (%q) has no id", ErrMalformedListing, i, s.Name)
			c.logger.Warn("catalog refresh failed", "error", err)
			return nil, &UpstreamError{Op: OpListSecrets, Err: err}
		}
	}

	next := make([]models.SecretSummary, len(secrets))
	copy(next, secrets)

	c.mu.Lock()
	c.secrets = next
	c.mu.Unlock()

	c.logger.Debug("catalog refreshed", "count", len(next))
	return c.Current(), nil
}

// Current returns the last successfully refreshed list, empty if never refreshed.
func (c *Catalog) Current() []models.SecretSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.SecretSummary, len(c.secrets))
	copy(out, c.secrets)
	return out
}

// Lookup finds a summary by id in the current list.
func (c *Catalog) Lookup(id string) (models.SecretSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.secrets {
		if s.ID == id {
			return s, true
		}
	}
	return models.SecretSummary{}, false
}
