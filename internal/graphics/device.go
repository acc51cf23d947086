package graphics

// ShaderStage selects the pipeline stage a shader object is compiled for.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// NoUniform is the location reported for a uniform the linked program does
// not expose. Uploads to it are ignored by OpenGL.
const NoUniform int32 = -1

// Device is the slice of an OpenGL context the background renderer drives.
// Object names are the raw GL names; zero means "no object".
type Device interface {
	CreateShader(stage ShaderStage) uint32
	CompileShader(shader uint32, source string) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	Viewport(x, y, width, height int32)
	DrawTriangles(first, count int32)

	// Release gives up the context. The device is unusable afterwards.
	Release()
}
