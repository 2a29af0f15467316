// Package control supplies the torque policies that drive pendulum agents
// between user inputs.
//
//   - [None]: no torque
//   - [PID]: holds the pendulum at a target angle
//   - [LQR]: balances the pendulum upright from nearby states
//   - [Sweep]: sinusoidal torque, keeps worlds in motion
//
// A policy's torque is added to whatever the user applies and the sum is
// clamped by the simulation.
package control
