package compute

import (
	"fmt"
	"sync/atomic"

	"github.com/san-kum/raycastview/internal/dynamo"
)

// HostDevice emulates device memory in the Go heap. Buffers are private
// allocations reachable only through Upload/Download, so code paths that
// depend on a readback behave exactly as on a real accelerator.
type HostDevice struct {
	id        int
	uploads   atomic.Int64
	downloads atomic.Int64
}

func NewHostDevice(id int) (*HostDevice, error) {
	if id != 0 {
		return nil, fmt.Errorf("host device %d: %w", id, dynamo.ErrDeviceUnavailable)
	}
	return &HostDevice{id: id}, nil
}

func (d *HostDevice) Name() string { return "host (emulated)" }
func (d *HostDevice) Kind() Kind   { return KindHost }
func (d *HostDevice) ID() int      { return d.id }
func (d *HostDevice) Close() error { return nil }

// Transfers reports how many uploads and downloads have completed.
func (d *HostDevice) Transfers() (uploads, downloads int64) {
	return d.uploads.Load(), d.downloads.Load()
}

func (d *HostDevice) Alloc(size int) (DeviceBuffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("alloc %d bytes: %w", size, dynamo.ErrTransfer)
	}
	return &hostBuffer{dev: d, mem: make([]byte, size)}, nil
}

type hostBuffer struct {
	dev *HostDevice
	mem []byte
}

func (b *hostBuffer) Len() int { return len(b.mem) }

func (b *hostBuffer) Upload(src []byte, offset int) error {
	if b.mem == nil && len(src) > 0 {
		return fmt.Errorf("upload to freed buffer: %w", dynamo.ErrTransfer)
	}
	if err := checkRange(len(src), offset, len(b.mem)); err != nil {
		return err
	}
	copy(b.mem[offset:], src)
	b.dev.uploads.Add(1)
	return nil
}

func (b *hostBuffer) Download(dst []byte, offset int) error {
	if b.mem == nil && len(dst) > 0 {
		return fmt.Errorf("download from freed buffer: %w", dynamo.ErrTransfer)
	}
	if err := checkRange(len(dst), offset, len(b.mem)); err != nil {
		return err
	}
	copy(dst, b.mem[offset:offset+len(dst)])
	b.dev.downloads.Add(1)
	return nil
}

func (b *hostBuffer) Free() error {
	b.mem = nil
	return nil
}
