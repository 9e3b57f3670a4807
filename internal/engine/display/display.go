// Package display presents CPU-rendered frames on screen. It owns a
// single fullscreen textured quad; each frame the rendered image is
// uploaded into the texture and drawn.
package display

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/verdantfx/grassfield/internal/logger"
)

// Display handles the OpenGL presentation of rendered frames.
type Display struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	texWidth  int
	texHeight int
}

// New creates the display.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New() (*Display, error) {
	d := &Display{}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.ClearColor(0, 0, 0, 1)

	var err error
	d.program, err = createBlitProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}

	d.createQuad()
	gl.GenTextures(1, &d.texture)

	return d, nil
}

// Close cleans up GL resources.
func (d *Display) Close() {
	logger.Info("closing display")
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.texture != 0 {
		gl.DeleteTextures(1, &d.texture)
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
	}
}

// Resize updates the GL viewport.
func (d *Display) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("display resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Present uploads the frame and draws it as a fullscreen quad.
func (d *Display) Present(frame *image.RGBA) {
	bounds := frame.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	if w != d.texWidth || h != d.texHeight {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&frame.Pix[0]))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		d.texWidth = w
		d.texHeight = h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&frame.Pix[0]))
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(d.program)
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// createBlitProgram builds the textured quad shader.
func createBlitProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec2 aPos;
		layout (location = 1) in vec2 aUV;

		out vec2 vUV;

		void main() {
			gl_Position = vec4(aPos, 0.0, 1.0);
			vUV = aUV;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec2 vUV;
		out vec4 FragColor;

		uniform sampler2D uFrame;

		void main() {
			FragColor = texture(uFrame, vUV);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("blit program created", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}

// createQuad builds the fullscreen triangle strip. The V coordinate is
// flipped because image rows run top to bottom.
func (d *Display) createQuad() {
	vertices := []float32{
		// Position  // UV
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)

	// UV attribute (location = 1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
