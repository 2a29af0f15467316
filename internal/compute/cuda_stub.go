//go:build !cuda

package compute

import (
	"fmt"

	"github.com/san-kum/raycastview/internal/dynamo"
)

// NewCUDADevice always fails in builds without the cuda tag.
func NewCUDADevice(id int) (Device, error) {
	return nil, fmt.Errorf("cuda device %d: built without cuda support: %w", id, dynamo.ErrDeviceUnavailable)
}
