package universe

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// goldenAngle spaces created planets around the spiral.
const goldenAngle = math.Pi * (3 - 2.23606797749979)

// Catalog is the in-memory set of communities.
// Thread-safe for concurrent access.
type Catalog interface {
	// All returns every community in insertion order.
	//
	// Returns:
	//   - []Community: a copy of the catalog
	All() []Community

	// Joined returns the communities the user has joined, in insertion order.
	//
	// Returns:
	//   - []Community: the joined subset
	Joined() []Community

	// Get looks up a community by ID.
	//
	// Parameters:
	//   - id: the community ID
	//
	// Returns:
	//   - Community: the community, zero if absent
	//   - bool: whether it was found
	Get(id uuid.UUID) (Community, bool)

	// Len returns the number of communities.
	Len() int

	// Create validates a creation request and appends the new community.
	// The creator joins it, it is placed on a spiral around the origin,
	// and a missing banner falls back to DefaultBannerURL.
	//
	// Parameters:
	//   - req: the creation form
	//
	// Returns:
	//   - Community: the created community
	//   - error: ErrInvalidCommunity if name, description or type is missing or unknown
	Create(req CreateRequest) (Community, error)
}

type catalogImpl struct {
	mu          *sync.Mutex
	logger      *zap.Logger
	communities []Community
	created     int
}

var _ Catalog = &catalogImpl{}

// NewCatalog creates a catalog. Communities without an ID are assigned a random one.
//
// Parameters:
//   - options: functional options to configure the catalog
//
// Returns:
//   - Catalog: the newly created catalog
func NewCatalog(options ...CatalogOption) Catalog {
	c := &catalogImpl{
		mu:     &sync.Mutex{},
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *catalogImpl) All() []Community {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Community, len(c.communities))
	copy(out, c.communities)
	return out
}

func (c *catalogImpl) Joined() []Community {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Community
	for _, cm := range c.communities {
		if cm.Joined {
			out = append(out, cm)
		}
	}
	return out
}

func (c *catalogImpl) Get(id uuid.UUID) (Community, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cm := range c.communities {
		if cm.ID == id {
			return cm, true
		}
	}
	return Community{}, false
}

func (c *catalogImpl) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.communities)
}

func (c *catalogImpl) Create(req CreateRequest) (Community, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	switch {
	case name == "":
		return Community{}, fmt.Errorf("%w: name is required", ErrInvalidCommunity)
	case description == "":
		return Community{}, fmt.Errorf("%w: description is required", ErrInvalidCommunity)
	case !validType(req.Type):
		return Community{}, fmt.Errorf("%w: unknown type %q", ErrInvalidCommunity, req.Type)
	}

	banner := strings.TrimSpace(req.BannerURL)
	if banner == "" {
		banner = DefaultBannerURL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.created
	c.created++
	cm := Community{
		ID:          uuid.New(),
		Name:        name,
		Category:    req.Type,
		Members:     1,
		Description: description,
		Color:       palette[n%len(palette)],
		Size:        1,
		Anchor:      spiralAnchor(n),
		OrbitSpeed:  0.15,
		OrbitRadius: 0.5,
		Joined:      true,
		BannerURL:   banner,
	}
	c.communities = append(c.communities, cm)
	c.logger.Info("community created",
		zap.String("id", cm.ID.String()),
		zap.String("name", cm.Name),
		zap.String("type", cm.Category),
	)
	return cm, nil
}

// spiralAnchor places the n-th created community on a golden-angle spiral
// outside the seeded cluster.
func spiralAnchor(n int) mgl32.Vec3 {
	r := 16 + 1.5*math.Sqrt(float64(n))
	sin, cos := math.Sincos(float64(n) * goldenAngle)
	return mgl32.Vec3{
		float32(r * cos),
		float32(n%5-2) * 2,
		float32(r * sin),
	}
}
