// Package input maps key names to scene actions.
//
// Key names follow the Bubble Tea KeyMsg.String() format ("q", "esc",
// "ctrl+c", " ", "tab", ...). The tcell frontend translates its events to
// the same names, so both frontends share one key map.
package input

import "github.com/san-kum/nlink/internal/scene"

// Binding documents one key binding.
type Binding struct {
	Keys string
	Help string
}

// Bindings lists the key map for help output.
var Bindings = []Binding{
	{"space, p", "pause / resume"},
	{"1-9, 0", "select link 1-10"},
	{"tab, shift+tab", "select next / previous link"},
	{"+, -", "add / remove link"},
	{"r", "reset"},
	{"q, esc, ctrl+c", "quit"},
}

// FromKey returns the action bound to name, or scene.None for unbound keys.
func FromKey(name string) scene.Action {
	switch name {
	case "q", "esc", "ctrl+c":
		return scene.Quit{}
	case " ", "space", "p":
		return scene.TogglePause{}
	case "tab", "right", "l":
		return scene.CycleSelection{Delta: 1}
	case "shift+tab", "left", "h":
		return scene.CycleSelection{Delta: -1}
	case "+", "=":
		return scene.AddLink{}
	case "-", "_":
		return scene.RemoveLink{}
	case "r":
		return scene.Reset{}
	}
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		idx := int(name[0]-'0') - 1
		if idx < 0 {
			idx = 9
		}
		return scene.SelectLink{Index: idx}
	}
	return scene.None{}
}
