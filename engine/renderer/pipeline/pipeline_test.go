package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-universe/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource = `
@group(0) @binding(0) var<uniform> tint: vec4<f32>;

@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return tint;
}
`

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("plain")

	assert.Equal(t, "plain", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.BlendState().Color.SrcFactor)
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))
	assert.Nil(t, p.RenderPipeline())
}

func TestPipelineOptions(t *testing.T) {
	vs, err := shader.NewShader("test_vs", shader.ShaderTypeVertex, testSource)
	require.NoError(t, err)
	fs, err := shader.NewShader("test_fs", shader.ShaderTypeFragment, testSource)
	require.NoError(t, err)

	p := NewPipeline("test",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeBack),
	)

	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
}
