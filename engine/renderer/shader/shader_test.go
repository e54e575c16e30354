package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const instancedSource = `
// uniforms first
struct Frame {
    view_proj: mat4x4<f32>,
    eye: vec4<f32>,
};

struct Item {
    center: vec3<f32>,
    radius: f32,
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> frame: Frame;
@group(0) @binding(1) var<storage, read> items: array<Item>;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec4<f32>,
};

/* the entry points */
@vertex
fn vs_main(in: VertexInput, @builtin(instance_index) i: u32) -> VertexOutput {
    var out: VertexOutput;
    out.clip = frame.view_proj * vec4<f32>(items[i].center + in.position * items[i].radius, 1.0);
    out.color = items[i].color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color;
}
`

func TestNewShaderVertexStage(t *testing.T) {
	s, err := NewShader("items_vs", ShaderTypeVertex, instancedSource)
	require.NoError(t, err)

	assert.Equal(t, "items_vs", s.Key())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, "items_vs", s.Module().Label)

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(24), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layouts[0].StepMode)
	require.Len(t, layouts[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layouts[0].Attributes[0].Format)
	assert.Equal(t, uint64(0), layouts[0].Attributes[0].Offset)
	assert.Equal(t, uint32(1), layouts[0].Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(12), layouts[0].Attributes[1].Offset)
}

func TestNewShaderBindGroups(t *testing.T) {
	s, err := NewShader("items_vs", ShaderTypeVertex, instancedSource)
	require.NoError(t, err)

	groups := s.BindGroupLayoutDescriptors()
	require.Contains(t, groups, 0)
	entries := groups[0].Entries
	require.Len(t, entries, 2)

	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
	assert.Equal(t, uint64(80), entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, entries[0].Visibility)

	assert.Equal(t, uint32(1), entries[1].Binding)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, entries[1].Buffer.Type)
	assert.Equal(t, uint64(32), entries[1].Buffer.MinBindingSize)

	assert.Equal(t, "frame", s.BindGroupVarName(0, 0))
	assert.Equal(t, "items", s.BindGroupVarName(0, 1))
	assert.Equal(t, "", s.BindGroupVarName(3, 0))
}

func TestNewShaderFragmentStage(t *testing.T) {
	s, err := NewShader("items_fs", ShaderTypeFragment, instancedSource)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())
	assert.Equal(t, wgpu.ShaderStageFragment, s.BindGroupLayoutDescriptors()[0].Entries[0].Visibility)
}

func TestNewShaderErrors(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeVertex, "")
	require.Error(t, err)

	_, err = NewShader("no_fragment", ShaderTypeFragment, "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }")
	require.Error(t, err)

	// A commented-out entry point does not count.
	_, err = NewShader("commented", ShaderTypeVertex, "// @vertex fn vs_main() {}\n")
	require.Error(t, err)
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vs, err := NewShader("items_vs", ShaderTypeVertex, instancedSource)
	require.NoError(t, err)
	fs, err := NewShader("items_fs", ShaderTypeFragment, instancedSource)
	require.NoError(t, err)

	extra := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
	}
	for g, desc := range fs.BindGroupLayoutDescriptors() {
		extra[g] = desc
	}

	merged := MergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), extra)
	require.Len(t, merged, 2)
	require.Len(t, merged[0].Entries, 2)
	for _, e := range merged[0].Entries {
		assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, e.Visibility)
	}
	assert.Equal(t, uint32(0), merged[0].Entries[0].Binding)
	assert.Equal(t, uint32(1), merged[0].Entries[1].Binding)
	require.Len(t, merged[1].Entries, 1)
	assert.Equal(t, wgpu.ShaderStageFragment, merged[1].Entries[0].Visibility)
}
