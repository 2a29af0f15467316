// Package viewer runs the interactive loop of a batched simulation.
//
// Every frame runs four phases in a fixed order, on the calling goroutine:
//
//  1. input: poll the window, apply built-in controls, call the world and
//     agent handlers for the selected world
//  2. step: call the step callback once, unless paused
//  3. render: draw the 3D scene for the selected world and view
//  4. overlay: reconstruct the selected raycast image into the "Raycast" panel
//
// The loop only stops between frames: when the window asks to close, when
// the context is cancelled, or when the step callback returns [ErrStop].
// Any other step error ends the loop and is returned to the caller; render
// and overlay are skipped for that frame.
//
// Drivers that keep state across frames thread it through [Run]:
//
//	episodes, err := viewer.Run(ctx, v, mgr, func(n int) (int, error) {
//		mgr.Step()
//		return n + 1, nil
//	}, 0)
package viewer
