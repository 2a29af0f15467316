// Package physics provides the body models simulated by the batch manager.
//
// Each model implements [dynamo.System]. [Pendulum] also implements
// [dynamo.Hamiltonian] so managers can report energy per world:
//
//	p := physics.NewPendulum()
//	pos := p.BobPosition(anchor, state)
//	e := p.Energy(state)
package physics
