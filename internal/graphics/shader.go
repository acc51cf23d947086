package graphics

import (
	"errors"
	"fmt"
)

var (
	// ErrCompile reports a shader stage that failed to compile.
	ErrCompile = errors.New("shader compile failed")
	// ErrLink reports a program whose stages compiled but did not link.
	ErrLink = errors.New("program link failed")
)

// CompileProgram compiles both stages and links them into a program. On
// failure every object created along the way is deleted and the returned
// error wraps ErrCompile or ErrLink together with the driver's info log.
func CompileProgram(dev Device, vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(dev, VertexStage, vertexSrc)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(dev, FragmentStage, fragmentSrc)
	if err != nil {
		dev.DeleteShader(vertexShader)
		return 0, err
	}

	program := dev.CreateProgram()
	dev.AttachShader(program, vertexShader)
	dev.AttachShader(program, fragmentShader)
	linked := dev.LinkProgram(program)

	// Shaders are no longer needed once the program is linked (or failed to).
	dev.DeleteShader(vertexShader)
	dev.DeleteShader(fragmentShader)

	if !linked {
		log := dev.ProgramInfoLog(program)
		dev.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, log)
	}
	return program, nil
}

func compileShader(dev Device, stage ShaderStage, source string) (uint32, error) {
	shader := dev.CreateShader(stage)
	if shader == 0 {
		return 0, fmt.Errorf("%w: could not create %s shader", ErrCompile, stage)
	}
	if !dev.CompileShader(shader, source) {
		log := dev.ShaderInfoLog(shader)
		dev.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s stage: %s", ErrCompile, stage, log)
	}
	return shader, nil
}
