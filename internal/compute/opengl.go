package compute

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/san-kum/raycastview/internal/dynamo"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// OpenGLDevice stores buffers as shader storage buffers on the GL context
// that is current on the calling thread. It must be opened after the window
// that owns the context, and used only from that thread.
type OpenGLDevice struct {
	id       int
	renderer string
}

func NewOpenGLDevice(id int) (*OpenGLDevice, error) {
	if id != 0 {
		return nil, fmt.Errorf("opengl device %d: only the current context is addressable: %w",
			id, dynamo.ErrDeviceUnavailable)
	}

	glInitOnce.Do(func() { glInitErr = gl.Init() })
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to init opengl: %v: %w", glInitErr, dynamo.ErrDeviceUnavailable)
	}

	return &OpenGLDevice{id: id, renderer: gl.GoStr(gl.GetString(gl.RENDERER))}, nil
}

func (d *OpenGLDevice) Name() string { return "opengl (" + d.renderer + ")" }
func (d *OpenGLDevice) Kind() Kind   { return KindOpenGL }
func (d *OpenGLDevice) ID() int      { return d.id }
func (d *OpenGLDevice) Close() error { return nil }

func (d *OpenGLDevice) Alloc(size int) (DeviceBuffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("alloc %d bytes: %w", size, dynamo.ErrTransfer)
	}

	var ssbo uint32
	gl.GenBuffers(1, &ssbo)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssbo)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_READ)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	if err := glError("alloc"); err != nil {
		gl.DeleteBuffers(1, &ssbo)
		return nil, err
	}

	return &glBuffer{ssbo: ssbo, size: size}, nil
}

type glBuffer struct {
	ssbo uint32
	size int
}

func (b *glBuffer) Len() int { return b.size }

func (b *glBuffer) Upload(src []byte, offset int) error {
	if err := checkRange(len(src), offset, b.size); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.ssbo)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, offset, len(src), gl.Ptr(&src[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return glError("upload")
}

func (b *glBuffer) Download(dst []byte, offset int) error {
	if err := checkRange(len(dst), offset, b.size); err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	gl.MemoryBarrier(gl.BUFFER_UPDATE_BARRIER_BIT)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.ssbo)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, offset, len(dst), gl.Ptr(&dst[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return glError("download")
}

func (b *glBuffer) Free() error {
	if b.ssbo != 0 {
		gl.DeleteBuffers(1, &b.ssbo)
		b.ssbo = 0
	}
	return nil
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl %s: error 0x%x: %w", op, code, dynamo.ErrTransfer)
	}
	return nil
}
