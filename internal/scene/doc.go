// Package scene composes frames of an N-link chain and drives the
// simulation loop.
//
// A [Driver] owns the chain, its link parameters and the current viewport.
// Each tick it applies at most one [Action], advances the chain once unless
// paused, and redraws the whole frame onto a [Surface]:
//
//	clear
//	for each link i:
//	    segment from joint i-1 (viewport centre for i = 0) to joint i
//	    marker at joint i
//	status line
//	show
//
// Markers are drawn right after the segment that reaches them so they stay
// on top of it. The selected link uses the highlighted styles.
//
// # States
//
//	Running  --TogglePause-->  Paused
//	Paused   --TogglePause-->  Running
//	any      --Quit-------->   Terminated
//
// Resize, selection and link edits keep the current state. Selecting an index
// outside the chain is ignored.
//
// A Driver is NOT safe for concurrent use. [Driver.Run] is the only loop that
// touches it.
package scene
