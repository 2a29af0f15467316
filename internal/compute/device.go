package compute

import (
	"fmt"

	"github.com/san-kum/raycastview/internal/dynamo"
)

type Kind string

const (
	KindAuto   Kind = "auto"
	KindHost   Kind = "host"
	KindOpenGL Kind = "opengl"
	KindCUDA   Kind = "cuda"
)

type Device interface {
	Name() string
	Kind() Kind
	ID() int
	Alloc(size int) (DeviceBuffer, error)
	Close() error
}

// DeviceBuffer is a block of device memory. Copies are synchronous: they
// return once the transfer has completed.
type DeviceBuffer interface {
	Len() int
	Upload(src []byte, offset int) error
	Download(dst []byte, offset int) error
	Free() error
}

// Open returns the device of the given kind. KindAuto prefers CUDA and falls
// back to emulated host memory.
func Open(kind Kind, id int) (Device, error) {
	if id < 0 {
		return nil, fmt.Errorf("device %d: %w", id, dynamo.ErrInvalidDevice)
	}

	switch kind {
	case KindHost:
		return NewHostDevice(id)
	case KindOpenGL:
		return NewOpenGLDevice(id)
	case KindCUDA:
		return NewCUDADevice(id)
	case KindAuto, "":
		if dev, err := NewCUDADevice(id); err == nil {
			return dev, nil
		}
		return NewHostDevice(id)
	default:
		return nil, fmt.Errorf("unknown device kind %q: %w", kind, dynamo.ErrDeviceUnavailable)
	}
}

func checkRange(n, offset, size int) error {
	if offset < 0 || n < 0 || offset+n > size {
		return fmt.Errorf("range [%d, %d) outside buffer of %d bytes: %w",
			offset, offset+n, size, dynamo.ErrTransfer)
	}
	return nil
}
