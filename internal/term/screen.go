// Package term is the tcell terminal surface and event bridge.
package term

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/nlink/internal/raster"
	"github.com/san-kum/nlink/internal/theme"
)

// tracer writes to trace with key 'nlink.term'
func tracer() tracing.Trace {
	return tracing.Select("nlink.term")
}

var errClosed = errors.New("term: screen is closed")

var styleSet = []raster.Style{
	raster.Rod, raster.RodSelected, raster.Joint, raster.JointSelected, raster.Text, raster.TextMuted,
}

// Screen renders scene frames onto a tcell screen.
type Screen struct {
	screen tcell.Screen
	styles map[raster.Style]tcell.Style
}

func background(th theme.Theme) tcell.Style {
	return tcell.StyleDefault.Background(tcell.GetColor(string(th.Background)))
}

// Open initializes the terminal: raw mode, alternate screen, hidden cursor.
// The caller must Close the returned screen on every exit path.
func Open(th theme.Theme) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: open: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term: init: %w", err)
	}
	tracer().Infof("term: screen initialized")
	return New(s, th), nil
}

// New wraps an already initialized tcell screen.
func New(s tcell.Screen, th theme.Theme) *Screen {
	s.HideCursor()
	s.SetStyle(background(th))
	return &Screen{screen: s, styles: Styles(th)}
}

// Styles maps every raster style to a tcell style for th.
func Styles(th theme.Theme) map[raster.Style]tcell.Style {
	m := make(map[raster.Style]tcell.Style, len(styleSet))
	for _, st := range styleSet {
		style := background(th).Foreground(tcell.GetColor(string(th.Color(st))))
		if st == raster.JointSelected || st == raster.Text {
			style = style.Bold(true)
		}
		m[st] = style
	}
	return m
}

// Close restores the terminal. It is safe to call more than once.
func (s *Screen) Close() {
	if s.screen == nil {
		return
	}
	s.screen.Fini()
	s.screen = nil
	tracer().Infof("term: screen restored")
}

// Size is 0x0 once the screen is closed.
func (s *Screen) Size() (int, int) {
	if s.screen == nil {
		return 0, 0
	}
	return s.screen.Size()
}

func (s *Screen) Clear() {
	if s.screen == nil {
		return
	}
	s.screen.Clear()
}

// Paint draws a block glyph. Cells outside the screen are ignored.
func (s *Screen) Paint(col, row int, st raster.Style) {
	s.put(col, row, raster.Block, st)
}

// Text writes str from (col, row) one rune per cell, clipped to the screen.
func (s *Screen) Text(col, row int, str string, st raster.Style) {
	for _, r := range str {
		s.put(col, row, r, st)
		col++
	}
}

func (s *Screen) put(col, row int, r rune, st raster.Style) {
	if s.screen == nil {
		return
	}
	w, h := s.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return
	}
	s.screen.SetContent(col, row, r, nil, s.styles[st])
}

// Show flushes the frame to the terminal.
func (s *Screen) Show() error {
	if s.screen == nil {
		return errClosed
	}
	s.screen.Show()
	return nil
}
