// Package graphicstest provides a recording graphics.Device for tests that
// cannot open a real OpenGL context.
package graphicstest

import (
	"emberglow/internal/graphics"
)

// Draw records one DrawTriangles call with the uniform values bound at the time.
type Draw struct {
	First, Count int32
	Uniforms     map[string][]float32
	Viewport     [4]int32
}

// Device records every call. Set the Fail* fields before use to simulate
// driver errors.
type Device struct {
	FailCompile map[graphics.ShaderStage]bool
	FailLink    bool
	// Missing lists uniforms UniformLocation reports as absent.
	Missing map[string]bool

	Draws    []Draw
	Calls    int
	Released bool

	next     uint32
	shaders  map[uint32]graphics.ShaderStage
	programs map[uint32]bool
	vaos     map[uint32]bool
	current  uint32
	bound    uint32
	viewport [4]int32

	locations map[int32]string
	values    map[string][]float32
}

var _ graphics.Device = (*Device)(nil)

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{
		FailCompile: make(map[graphics.ShaderStage]bool),
		Missing:     make(map[string]bool),
		shaders:     make(map[uint32]graphics.ShaderStage),
		programs:    make(map[uint32]bool),
		vaos:        make(map[uint32]bool),
		locations:   make(map[int32]string),
		values:      make(map[string][]float32),
	}
}

// Live returns the number of shader, program and vertex array objects not
// yet deleted.
func (d *Device) Live() int {
	return len(d.shaders) + len(d.programs) + len(d.vaos)
}

// LastViewport returns the last viewport set.
func (d *Device) LastViewport() [4]int32 {
	return d.viewport
}

func (d *Device) alloc() uint32 {
	d.next++
	return d.next
}

func (d *Device) CreateShader(stage graphics.ShaderStage) uint32 {
	d.Calls++
	id := d.alloc()
	d.shaders[id] = stage
	return id
}

func (d *Device) CompileShader(shader uint32, source string) bool {
	d.Calls++
	return !d.FailCompile[d.shaders[shader]]
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	d.Calls++
	return "0:1(1): error: simulated " + d.shaders[shader].String() + " failure"
}

func (d *Device) DeleteShader(shader uint32) {
	d.Calls++
	delete(d.shaders, shader)
}

func (d *Device) CreateProgram() uint32 {
	d.Calls++
	id := d.alloc()
	d.programs[id] = true
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	d.Calls++
}

func (d *Device) LinkProgram(program uint32) bool {
	d.Calls++
	return !d.FailLink
}

func (d *Device) ProgramInfoLog(program uint32) string {
	d.Calls++
	return "error: simulated link failure"
}

func (d *Device) DeleteProgram(program uint32) {
	d.Calls++
	delete(d.programs, program)
}

func (d *Device) UseProgram(program uint32) {
	d.Calls++
	d.current = program
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.Calls++
	if d.Missing[name] {
		return graphics.NoUniform
	}
	loc := int32(len(d.locations))
	d.locations[loc] = name
	return loc
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.Calls++
	if name, ok := d.locations[location]; ok {
		d.values[name] = []float32{v}
	}
}

func (d *Device) Uniform2f(location int32, x, y float32) {
	d.Calls++
	if name, ok := d.locations[location]; ok {
		d.values[name] = []float32{x, y}
	}
}

func (d *Device) CreateVertexArray() uint32 {
	d.Calls++
	id := d.alloc()
	d.vaos[id] = true
	return id
}

func (d *Device) BindVertexArray(vao uint32) {
	d.Calls++
	d.bound = vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.Calls++
	delete(d.vaos, vao)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.Calls++
	d.viewport = [4]int32{x, y, width, height}
}

func (d *Device) DrawTriangles(first, count int32) {
	d.Calls++
	uniforms := make(map[string][]float32, len(d.values))
	for k, v := range d.values {
		uniforms[k] = append([]float32(nil), v...)
	}
	d.Draws = append(d.Draws, Draw{First: first, Count: count, Uniforms: uniforms, Viewport: d.viewport})
}

func (d *Device) Release() {
	d.Calls++
	d.Released = true
}
