package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, paired with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds the parsed metadata needed to build a render pipeline from WGSL source.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is one stage of a WGSL program together with the layouts parsed from its source:
// the entry point, the vertex buffer layouts and the bind group layout descriptors.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL source code.
	Source() string

	// ShaderType returns the stage this shader was parsed for.
	ShaderType() ShaderType

	// EntryPoint returns the name of the @vertex or @fragment function.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// VertexLayouts returns the vertex buffer layouts in declaration order.
	// Only vertex shaders have layouts; a struct counts as a vertex input when all of
	// its fields carry @location and none carry @builtin.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex input struct
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors returns the parsed bind group layouts keyed by group index.
	// Entries carry this shader's stage as their visibility.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the WGSL variable bound at group/binding, or "".
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if nothing is bound there
	BindGroupVarName(group, binding int) string

	// Module returns the shader module descriptor built from the source.
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses WGSL source for one pipeline stage.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - shaderType: the stage to parse the entry point and layouts for
//   - source: the WGSL source
//
// Returns:
//   - Shader: the parsed shader
//   - error: error if the source is empty or has no entry point for the stage
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader %s: empty source", key)
	}
	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}

	s.entryPoint = parseEntryPoint(source, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: no entry point for stage %d", key, shaderType)
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(source)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(source, visibility)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// MergeBindGroupLayouts combines the bind group layouts of a vertex and a fragment shader.
// Entries with the same group and binding have their visibility ORed together; the result is
// sorted by binding so the pipeline layout is deterministic.
//
// Parameters:
//   - vertexLayouts: descriptors from the vertex shader
//   - fragmentLayouts: descriptors from the fragment shader
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: merged descriptors keyed by group index
func MergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor, len(vertexLayouts))
	for g, desc := range vertexLayouts {
		merged[g] = desc
	}
	for g, fDesc := range fragmentLayouts {
		vDesc, ok := merged[g]
		if !ok {
			merged[g] = fDesc
			continue
		}

		byBinding := make(map[uint32]wgpu.BindGroupLayoutEntry, len(vDesc.Entries)+len(fDesc.Entries))
		for _, e := range vDesc.Entries {
			byBinding[e.Binding] = e
		}
		for _, e := range fDesc.Entries {
			if existing, ok := byBinding[e.Binding]; ok {
				existing.Visibility |= e.Visibility
				byBinding[e.Binding] = existing
				continue
			}
			byBinding[e.Binding] = e
		}

		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(byBinding))
		for _, e := range byBinding {
			entries = append(entries, e)
		}
		sortEntries(entries)
		merged[g] = wgpu.BindGroupLayoutDescriptor{Label: vDesc.Label, Entries: entries}
	}
	return merged
}
