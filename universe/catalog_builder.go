package universe

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogOption is a functional option for configuring a Catalog.
type CatalogOption func(*catalogImpl)

// WithCommunities seeds the catalog.
//
// Parameters:
//   - communities: the initial communities
//
// Returns:
//   - CatalogOption: option function to apply
func WithCommunities(communities ...Community) CatalogOption {
	return func(c *catalogImpl) {
		for _, cm := range communities {
			if cm.ID == uuid.Nil {
				cm.ID = uuid.New()
			}
			c.communities = append(c.communities, cm)
		}
	}
}

// WithCatalogLogger sets the catalog's logger. Defaults to a no-op logger.
func WithCatalogLogger(logger *zap.Logger) CatalogOption {
	return func(c *catalogImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}
