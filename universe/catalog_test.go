package universe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCommunities() []Community {
	return []Community{
		{Name: "Tech Pioneers", Category: "Technology", Anchor: mgl32.Vec3{-8, 4, -5}, Joined: true},
		{Name: "Cosmic Creators", Category: "Art & Design", Anchor: mgl32.Vec3{0, 3, -8}},
		{Name: "Gaming Nebula", Category: "Gaming", Anchor: mgl32.Vec3{10, 5, -3}, Joined: true},
		{Name: "Sound Waves", Category: "Music", Anchor: mgl32.Vec3{-6, -2, 4}},
		{Name: "Code Cluster", Category: "Technology", Anchor: mgl32.Vec3{-10, -6, 0}},
	}
}

func TestCatalogSeedAssignsIDs(t *testing.T) {
	c := NewCatalog(WithCommunities(seedCommunities()...))
	all := c.All()
	require.Len(t, all, 5)
	assert.Equal(t, 5, c.Len())

	seen := map[uuid.UUID]bool{}
	for _, cm := range all {
		assert.NotEqual(t, uuid.Nil, cm.ID)
		seen[cm.ID] = true
	}
	assert.Len(t, seen, 5)

	got, ok := c.Get(all[2].ID)
	require.True(t, ok)
	assert.Equal(t, "Gaming Nebula", got.Name)

	_, ok = c.Get(uuid.New())
	assert.False(t, ok)
}

func TestCatalogJoined(t *testing.T) {
	c := NewCatalog(WithCommunities(seedCommunities()...))
	joined := c.Joined()
	require.Len(t, joined, 2)
	assert.Equal(t, "Tech Pioneers", joined[0].Name)
	assert.Equal(t, "Gaming Nebula", joined[1].Name)
}

func TestCatalogAllReturnsCopy(t *testing.T) {
	c := NewCatalog(WithCommunities(seedCommunities()...))
	all := c.All()
	all[0].Name = "changed"
	assert.Equal(t, "Tech Pioneers", c.All()[0].Name)
}

func TestCatalogCreate(t *testing.T) {
	c := NewCatalog()

	cm, err := c.Create(CreateRequest{Name: "  Star Gazers ", Description: "Night sky fans", Type: "Science"})
	require.NoError(t, err)

	assert.Equal(t, "Star Gazers", cm.Name)
	assert.Equal(t, "Science", cm.Category)
	assert.Equal(t, DefaultBannerURL, cm.BannerURL)
	assert.True(t, cm.Joined)
	assert.NotEqual(t, uuid.Nil, cm.ID)
	assert.Equal(t, 1, c.Len())
	assert.Len(t, c.Joined(), 1)

	second, err := c.Create(CreateRequest{Name: "Synth Lab", Description: "Modular synths", Type: "Music", BannerURL: "https://example.com/b.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b.png", second.BannerURL)
	assert.NotEqual(t, cm.Anchor, second.Anchor)
	assert.NotEqual(t, cm.Color, second.Color)
}

func TestCatalogCreateRejectsIncompleteForms(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing name", CreateRequest{Name: " ", Description: "d", Type: "Gaming"}},
		{"missing description", CreateRequest{Name: "n", Type: "Gaming"}},
		{"missing type", CreateRequest{Name: "n", Description: "d"}},
		{"unknown type", CreateRequest{Name: "n", Description: "d", Type: "Knitting"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog()
			_, err := c.Create(tt.req)
			assert.ErrorIs(t, err, ErrInvalidCommunity)
			assert.Zero(t, c.Len())
		})
	}
}

func TestSpiralAnchorsClearSeededCluster(t *testing.T) {
	for n := 0; n < 20; n++ {
		a := spiralAnchor(n)
		assert.GreaterOrEqual(t, mgl32.Vec2{a[0], a[2]}.Len(), float32(15.9))
	}
}
