package dynamo

import (
	"errors"
	"fmt"
)

// Construction errors. Raised once, never retried.
var (
	// ErrInvalidWindow indicates a non-positive window dimension.
	ErrInvalidWindow = errors.New("dynamo: invalid window dimensions")

	// ErrInvalidDevice indicates a negative device id.
	ErrInvalidDevice = errors.New("dynamo: invalid device id")

	// ErrDeviceUnavailable indicates no compatible compute device for the
	// requested backend and id, or a build without that backend.
	ErrDeviceUnavailable = errors.New("dynamo: device acceleration unavailable")

	// ErrInvalidLayout indicates a raycast layout with no worlds, no cameras
	// or a negative resolution.
	ErrInvalidLayout = errors.New("dynamo: invalid raycast layout")
)

// Lifetime errors.
var (
	// ErrSessionClosed indicates use of a session after Close.
	ErrSessionClosed = errors.New("dynamo: session closed")

	// ErrSessionInUse indicates Close on a session that still has consumers.
	ErrSessionInUse = errors.New("dynamo: session still in use")
)

// ErrTransfer indicates a failed device-to-host or host-to-device copy. The
// destination is undefined afterwards.
var ErrTransfer = errors.New("dynamo: device transfer failed")

// Phase names one stage of a viewer frame.
type Phase string

const (
	PhaseInput   Phase = "input"
	PhaseStep    Phase = "step"
	PhaseRender  Phase = "render"
	PhaseOverlay Phase = "overlay"
)

// FrameError wraps a failure with the frame and phase it happened in.
type FrameError struct {
	Frame   int
	Phase   Phase
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Frame, e.Phase, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
