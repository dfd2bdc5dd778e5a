package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/nlink/internal/input"
	"github.com/san-kum/nlink/internal/scene"
)

// KeyName returns the Bubble Tea style name of a tcell key event.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	}
	return ""
}

// Translate decodes a tcell event. ok is false for events with no action.
func Translate(ev tcell.Event) (a scene.Action, ok bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a = input.FromKey(KeyName(ev))
		if _, idle := a.(scene.None); idle {
			return nil, false
		}
		return a, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return scene.Resize{Width: w, Height: h}, true
	}
	return nil, false
}

// Events starts the input bridge: a goroutine polls the screen and forwards
// decoded actions. The channel is closed once the screen is finalized.
func (s *Screen) Events() <-chan scene.Action {
	out := make(chan scene.Action, 16)
	screen := s.screen
	if screen == nil {
		close(out)
		return out
	}
	go func() {
		defer close(out)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if a, ok := Translate(ev); ok {
				out <- a
			}
		}
	}()
	return out
}
