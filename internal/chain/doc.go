// Package chain holds the mutable state of an N-link pendulum and the
// stepper that advances it.
//
// Each link swings about the tip of the link before it (link 0 about the
// fixed origin), but the dynamics are evaluated per link as an independent
// simple pendulum:
//
//	angle[i]    += velocity[i] * dt
//	velocity[i] -= (gravity / length[i]) * sin(angle[i]) * dt
//
// The velocity update reads the angle written in the same step. Mass is
// carried on [Link] for display only.
//
// A [Chain] is NOT safe for concurrent use; the frame driver owns it.
package chain
