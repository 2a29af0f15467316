// Package batch runs many independent pendulum worlds side by side and
// renders a raycast image for every (world, camera) pair after each step.
//
// Each world holds NumAgents pendulums hanging over a ground plane and
// NumCams cameras on a ring around them. The raycast output is written in
// the layout described by package raycast, either straight into a host
// buffer or through a staging slice uploaded to a compute device.
package batch
