package raycast

import (
	"fmt"

	"github.com/san-kum/raycastview/internal/compute"
)

// Buffer is the session's raycast output. Exactly one of host and dev is
// set, according to mode.
type Buffer struct {
	layout Layout
	mode   ExecMode
	host   []byte
	dev    compute.DeviceBuffer
}

func NewHostBuffer(l Layout) (*Buffer, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &Buffer{layout: l, mode: HostOnly, host: make([]byte, l.Len())}, nil
}

func NewDeviceBuffer(l Layout, dev compute.Device) (*Buffer, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	mem, err := dev.Alloc(l.Len())
	if err != nil {
		return nil, fmt.Errorf("allocating raycast buffer on %s: %w", dev.Name(), err)
	}
	return &Buffer{layout: l, mode: DeviceAccelerated, dev: mem}, nil
}

func (b *Buffer) Layout() Layout { return b.layout }
func (b *Buffer) Mode() ExecMode { return b.mode }

// Host returns the host-resident bytes, or nil for a device buffer. Only the
// producer of the images may write through it.
func (b *Buffer) Host() []byte { return b.host }

// Device returns the device-resident memory, or nil for a host buffer.
func (b *Buffer) Device() compute.DeviceBuffer { return b.dev }

func (b *Buffer) Free() error {
	b.host = nil
	if b.dev != nil {
		return b.dev.Free()
	}
	return nil
}
