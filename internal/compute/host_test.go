package compute

import (
	"bytes"
	"errors"
	"testing"

	"github.com/san-kum/raycastview/internal/dynamo"
)

func TestHostBufferRoundTrip(t *testing.T) {
	dev, err := NewHostDevice(0)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := dev.Alloc(8)
	if err != nil {
		t.Fatal(err)
	}

	if err := buf.Upload([]byte{1, 2, 3, 4}, 2); err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, 4)
	if err := buf.Download(dst, 2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected contents %v", dst)
	}

	up, down := dev.Transfers()
	if up != 1 || down != 1 {
		t.Errorf("expected 1/1 transfers, got %d/%d", up, down)
	}
}

func TestHostBufferOutOfRange(t *testing.T) {
	dev, _ := NewHostDevice(0)
	buf, _ := dev.Alloc(4)

	tests := []struct {
		name   string
		n, off int
	}{
		{"past end", 4, 1},
		{"negative offset", 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := buf.Download(make([]byte, tt.n), tt.off)
			if !errors.Is(err, dynamo.ErrTransfer) {
				t.Errorf("expected ErrTransfer, got %v", err)
			}
		})
	}
}

func TestHostBufferFreed(t *testing.T) {
	dev, _ := NewHostDevice(0)
	buf, _ := dev.Alloc(4)
	_ = buf.Free()

	if err := buf.Download(make([]byte, 1), 0); !errors.Is(err, dynamo.ErrTransfer) {
		t.Errorf("expected ErrTransfer after free, got %v", err)
	}
}

func TestOpenDeviceSelection(t *testing.T) {
	dev, err := Open(KindHost, 0)
	if err != nil || dev.Kind() != KindHost {
		t.Fatalf("expected host device, got %v, %v", dev, err)
	}

	if _, err := Open(KindHost, 1); !errors.Is(err, dynamo.ErrDeviceUnavailable) {
		t.Errorf("expected ErrDeviceUnavailable for host id 1, got %v", err)
	}
	if _, err := Open(KindHost, -1); !errors.Is(err, dynamo.ErrInvalidDevice) {
		t.Errorf("expected ErrInvalidDevice, got %v", err)
	}
	if _, err := Open("vulkan", 0); !errors.Is(err, dynamo.ErrDeviceUnavailable) {
		t.Errorf("expected ErrDeviceUnavailable for unknown kind, got %v", err)
	}

	auto, err := Open(KindAuto, 0)
	if err != nil {
		t.Fatalf("auto selection failed: %v", err)
	}
	if auto.Kind() != KindHost && auto.Kind() != KindCUDA {
		t.Errorf("unexpected auto kind %s", auto.Kind())
	}
}
