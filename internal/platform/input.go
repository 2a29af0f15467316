package platform

import "github.com/go-gl/mathgl/mgl32"

type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyShift
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyEscape
	KeyR
)

// KeySet is a bitset of keys.
type KeySet uint32

func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) Has(k Key) bool    { return s&(1<<k) != 0 }
func (s KeySet) With(k Key) KeySet { return s | 1<<k }
func (s KeySet) Empty() bool       { return s == 0 }

// Input is one frame's snapshot of keyboard and mouse state. Handlers only
// read it.
type Input struct {
	Pressed    KeySet
	Down       KeySet
	MouseDelta mgl32.Vec2
	// Look is set while the look button is held; MouseDelta then rotates
	// the free camera.
	Look bool
	// Dt is the time since the previous poll in seconds.
	Dt float32
}
