package graphics

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLDevice drives the OpenGL context current on the calling thread.
type GLDevice struct {
	release func()
	draws   uint64
}

// NewGLDevice loads the GL function pointers for the current context and
// returns a Device over it. release runs once when the device is released;
// it may be nil.
func NewGLDevice(release func()) (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	// The background is opaque and drawn alone.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	return &GLDevice{release: release}, nil
}

func (d *GLDevice) CreateShader(stage ShaderStage) uint32 {
	switch stage {
	case VertexStage:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case FragmentStage:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return 0
	}
}

func (d *GLDevice) CompileShader(shader uint32, source string) bool {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDevice) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *GLDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GLDevice) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *GLDevice) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *GLDevice) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDevice) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *GLDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *GLDevice) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (d *GLDevice) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *GLDevice) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *GLDevice) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GLDevice) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *GLDevice) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
	d.draws++
}

// DrawCount returns the number of draw calls issued so far. The host uses it
// to tell whether the back buffer holds anything worth presenting.
func (d *GLDevice) DrawCount() uint64 {
	return d.draws
}

var _ Device = (*GLDevice)(nil)

func (d *GLDevice) Release() {
	if d.release != nil {
		d.release()
		d.release = nil
	}
}
