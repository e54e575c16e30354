package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-universe/config"
	"github.com/Carmen-Shannon/oxy-universe/engine/camera"
	"github.com/Carmen-Shannon/oxy-universe/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildUniverse(t *testing.T) {
	rig := buildUniverse(config.Default(), false, zap.NewNop())

	assert.Len(t, rig.communities, 15)
	assert.Len(t, rig.planets, 15)
	assert.Equal(t, 15, rig.scene.Count())
	assert.Equal(t, camera.Idle, rig.transition.State())

	for i, p := range rig.planets {
		assert.Equal(t, rig.communities[i].Name, p.Name())
		assert.Equal(t, rig.communities[i].Anchor, p.Anchor())
		assert.Equal(t, i, rig.planetIndex(p))
	}
	assert.Equal(t, -1, rig.planetIndex(nil))
}

func TestBuildUniverseJoinedOnly(t *testing.T) {
	rig := buildUniverse(config.Default(), true, zap.NewNop())

	require.Len(t, rig.communities, 4)
	for _, c := range rig.communities {
		assert.True(t, c.Joined, c.Name)
	}
}

func TestShutdownCancelsFlight(t *testing.T) {
	rig := buildUniverse(config.Default(), false, zap.NewNop())

	anim, err := rig.session.SearchSelect(2)
	require.NoError(t, err)
	rig.frames.Dispatch(0.1)
	assert.Equal(t, camera.Spinning, rig.transition.State())

	rig.shutdown()

	assert.Equal(t, camera.Idle, rig.transition.State())
	assert.Equal(t, camera.OutcomeCancelled, anim.Outcome())
	assert.Equal(t, 0, rig.frames.Len())
}

func TestPrintCommunities(t *testing.T) {
	rig := buildUniverse(config.Default(), true, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, printCommunities(&buf, rig.communities, 0))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, buf.String(), "Tech Pioneers")
	assert.Contains(t, buf.String(), "Code Cluster")
}

func TestCreateCommunity(t *testing.T) {
	catalog := universe.NewCatalog(universe.WithCommunities(communitiesFromConfig(config.Default().Communities)...))
	before := catalog.Len()

	var buf bytes.Buffer
	req := universe.CreateRequest{
		Name:        "Night Owls",
		Description: "Late night builders",
		Type:        universe.CommunityTypes[0],
	}
	require.NoError(t, createCommunity(catalog, req, &buf))

	assert.Equal(t, before+1, catalog.Len())
	out := buf.String()
	assert.Contains(t, out, "created Night Owls")
	assert.Contains(t, out, universe.DefaultBannerURL)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, strconv.Itoa(before+1)), last)
	assert.Contains(t, last, "Night Owls")
	assert.Contains(t, last, "yes")
}

func TestCreateCommunityRejectsUnknownType(t *testing.T) {
	catalog := universe.NewCatalog()

	var buf bytes.Buffer
	err := createCommunity(catalog, universe.CreateRequest{Name: "x", Description: "y", Type: "nope"}, &buf)
	require.ErrorIs(t, err, universe.ErrInvalidCommunity)
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, catalog.Len())
}

func TestCommunitiesCreateCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"communities", "create"})
	require.NoError(t, err)
	assert.Same(t, communitiesCreateCmd, cmd)
	for _, name := range []string{"name", "description", "type", "banner"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
