// Package dynamo provides the shared simulation primitives and domain errors
// used across raycastview.
//
// It defines:
//
//   - [State] and [Control]: flat float vectors for one simulated body
//   - [System]: an ODE system (dX/dt = f(X, u, t))
//   - [Integrator]: a numerical stepper over a [System]
//   - [ParallelFor]: chunked fan-out used by batched managers
//
// and the error taxonomy shared by the session, viewer and overlay
// packages ([ErrDeviceUnavailable], [FrameError], ...).
//
// # Thread Safety
//
// Integrators keep scratch space and are NOT safe for concurrent use. A
// batched manager that steps worlds in parallel gives each worker its own
// integrator.
package dynamo
