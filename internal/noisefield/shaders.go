package noisefield

import _ "embed"

// Uniform names declared by FragmentShader.
const (
	UniformTime            = "uTime"
	UniformResolution      = "uResolution"
	UniformScrollIntensity = "uScrollIntensity"
)

// QuadVertices is the vertex count VertexShader expects per draw.
const QuadVertices = 6

// VertexShader emits a full-surface quad from gl_VertexID; it needs an empty
// vertex array bound and no buffers.
//
//go:embed shaders/fullscreen.vert.glsl
var VertexShader string

// FragmentShader evaluates the field per pixel.
//
//go:embed shaders/noisefield.frag.glsl
var FragmentShader string
