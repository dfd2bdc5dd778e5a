package scene

import "fmt"

// Action is a decoded input event. The set of actions is closed; every
// implementation lives in this file.
type Action interface {
	isAction()
}

// None is the action of a tick without input.
type None struct{}

// Quit terminates the loop.
type Quit struct{}

// TogglePause switches between Running and Paused.
type TogglePause struct{}

// SelectLink highlights link Index.
type SelectLink struct {
	Index int
}

// CycleSelection moves the highlight by Delta links, wrapping around.
type CycleSelection struct {
	Delta int
}

// Resize reports new terminal dimensions in cells.
type Resize struct {
	Width, Height int
}

// AddLink appends a link copying the parameters of the last one.
type AddLink struct{}

// RemoveLink drops the last link.
type RemoveLink struct{}

// Reset restores the initial chain.
type Reset struct{}

func (None) isAction()           {}
func (Quit) isAction()           {}
func (TogglePause) isAction()    {}
func (SelectLink) isAction()     {}
func (CycleSelection) isAction() {}
func (Resize) isAction()         {}
func (AddLink) isAction()        {}
func (RemoveLink) isAction()     {}
func (Reset) isAction()          {}

func (None) String() string             { return "none" }
func (Quit) String() string             { return "quit" }
func (TogglePause) String() string      { return "toggle-pause" }
func (a SelectLink) String() string     { return fmt.Sprintf("select(%d)", a.Index) }
func (a CycleSelection) String() string { return fmt.Sprintf("cycle(%+d)", a.Delta) }
func (a Resize) String() string         { return fmt.Sprintf("resize(%dx%d)", a.Width, a.Height) }
func (AddLink) String() string          { return "add-link" }
func (RemoveLink) String() string       { return "remove-link" }
func (Reset) String() string            { return "reset" }

// State is the lifecycle state of a Driver.
type State int

const (
	Running State = iota
	Paused
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}
