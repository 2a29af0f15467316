package raycast

import "fmt"

// Reader yields one image's bytes at a time. The returned slice is only
// valid until the next call and must not be written.
type Reader interface {
	Image(index int) ([]byte, error)
	// Scratch is the host readback copy, or nil when none is needed.
	Scratch() []byte
}

// NewReader picks the access path for b once.
func NewReader(b *Buffer) Reader {
	switch b.mode {
	case DeviceAccelerated:
		return &deviceReader{
			buf:     b,
			scratch: make([]byte, b.layout.BytesPerImage()),
		}
	default:
		return &hostReader{buf: b}
	}
}

type hostReader struct {
	buf *Buffer
}

func (r *hostReader) Image(index int) ([]byte, error) {
	off := r.buf.layout.Offset(index)
	return r.buf.host[off : off+r.buf.layout.BytesPerImage()], nil
}

func (r *hostReader) Scratch() []byte { return nil }

type deviceReader struct {
	buf     *Buffer
	scratch []byte
}

func (r *deviceReader) Image(index int) ([]byte, error) {
	if err := r.buf.dev.Download(r.scratch, r.buf.layout.Offset(index)); err != nil {
		return nil, fmt.Errorf("reading back image %d: %w", index, err)
	}
	return r.scratch, nil
}

func (r *deviceReader) Scratch() []byte { return r.scratch }
