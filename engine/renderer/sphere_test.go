package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereMeshCounts(t *testing.T) {
	vertices, indices := NewSphereMesh(4, 6)
	assert.Len(t, vertices, 5*7)
	assert.Len(t, indices, 6*(4-1)*6)
	for _, idx := range indices {
		assert.Less(t, int(idx), len(vertices))
	}
}

func TestSphereMeshClampsResolution(t *testing.T) {
	vertices, indices := NewSphereMesh(0, 0)
	assert.Len(t, vertices, 3*4)
	assert.Len(t, indices, 3*(2-1)*6)
}

func TestSphereMeshUnitNormals(t *testing.T) {
	vertices, _ := NewSphereMesh(SphereStacks, SphereSlices)
	for i, v := range vertices {
		assert.InDelta(t, 1, v.Position.Len(), 1e-5, "vertex %d", i)
		assert.Equal(t, v.Position, v.Normal)
	}
	assert.InDelta(t, 1, vertices[0].Position.Y(), 1e-6)
	assert.InDelta(t, -1, vertices[len(vertices)-1].Position.Y(), 1e-6)
}

func TestSphereMeshWindsOutward(t *testing.T) {
	vertices, indices := NewSphereMesh(SphereStacks, SphereSlices)
	require.Zero(t, len(indices)%3)
	for i := 0; i < len(indices); i += 3 {
		a := vertices[indices[i]].Position
		b := vertices[indices[i+1]].Position
		c := vertices[indices[i+2]].Position
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c)
		require.Greater(t, normal.Dot(centroid), float32(0), "triangle %d faces inward or is degenerate", i/3)
	}
}

func TestMarshalMesh(t *testing.T) {
	vertices, indices := NewSphereMesh(2, 3)
	assert.Len(t, marshalVertices(vertices), len(vertices)*sphereVertexSize)
	buf := marshalIndices(indices)
	require.Len(t, buf, len(indices)*4)
	assert.Equal(t, byte(indices[1]), buf[4])
}
