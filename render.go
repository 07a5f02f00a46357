package main

// Screen rendering. A dirty frame repaints everything; a clean frame only
// refreshes the gutter, the status bar and the cursor. Drawing reads the
// editor state and never changes it; the frame is prepared beforehand by
// prepareFrame.

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
)

// prepareFrame reconciles the cursor column and scrolls the viewport so the
// cursor is visible.
func (e *Editor) prepareFrame() {
	e.state.clampCursor()
	e.state.frameCursor()
}

// render prepares and draws one frame, then clears the dirty flag.
func (e *Editor) render() error {
	e.prepareFrame()
	if !e.state.Dirty {
		return e.refresh()
	}
	if err := e.draw(); err != nil {
		return err
	}
	e.state.Dirty = false
	return nil
}

// draw repaints the whole screen.
func (e *Editor) draw() error {
	s := e.state
	fg, bg := e.palette.Get(ColorDefault)
	e.screen.HideCursor()
	if err := e.screen.Clear(fg, bg); err != nil {
		return renderError("clear", err)
	}

	var sel *Range
	if e.mode == ModeVisual {
		r := s.selectionRange(e.visual)
		sel = &r
	}

	rows := s.textRows()
	for row := 0; row < rows; row++ {
		e.drawGutter(row)
		y := s.Viewport.Y + row
		if y >= len(s.Lines) {
			markerFg, markerBg := e.palette.Get(ColorEmptyLineMarker)
			e.screen.SetCell(gutterWidth, row, '~', markerFg, markerBg)
			continue
		}
		if err := e.drawLine(row, y, sel); err != nil {
			return renderError("highlight", err)
		}
	}

	e.drawStatusBar()
	e.drawMessage()
	e.placeCursor()
	if err := e.screen.Flush(); err != nil {
		return renderError("flush", err)
	}
	return nil
}

// refresh redraws the parts that change on every keystroke.
func (e *Editor) refresh() error {
	for row := 0; row < e.state.textRows(); row++ {
		e.drawGutter(row)
	}
	e.drawStatusBar()
	if e.mode == ModeCommand {
		e.drawMessage()
	}
	e.placeCursor()
	if err := e.screen.Flush(); err != nil {
		return renderError("flush", err)
	}
	return nil
}

// drawGutter writes the distance of screen row from the cursor row, or an
// arrow on the cursor row itself.
func (e *Editor) drawGutter(row int) {
	fg, bg := e.palette.Get(ColorGutterLineNumber)
	cursorRow := e.state.Cursor.Y - e.state.Viewport.Y

	label := "-> "
	if row != cursorRow {
		label = fmt.Sprintf("%02d ", abs(row-cursorRow))
	}
	drawString(e.screen, 0, row, label[:min(len(label), gutterWidth)], fg, bg)
}

// drawLine paints the visible slice of document line y at screen row.
func (e *Editor) drawLine(row, y int, sel *Range) error {
	s := e.state
	line := s.Lines[y]
	if s.Viewport.X >= len(line) {
		return nil
	}
	visible := line[s.Viewport.X:min(len(line), s.Viewport.X+s.textColumns())]

	x := s.Viewport.X
	screenX := gutterWidth
	for tok, err := range s.Syntax.Tokens(visible) {
		if err != nil {
			return err
		}
		fg, bg := s.Syntax.Style(tok.Category)
		for _, r := range tok.Text {
			cellFg, cellBg := fg, bg
			switch {
			case e.inSelection(sel, x, y):
				cellFg, cellBg = e.palette.Get(ColorVisualModeSelection)
			case e.inMatch(x, y):
				cellFg, cellBg = e.palette.Get(ColorSearchMatch)
			}

			w := cellWidth(r)
			if screenX+w > s.Viewport.Width {
				return nil
			}
			e.screen.SetCell(screenX, row, r, cellFg, cellBg)
			screenX += w
			x++
		}
	}
	return nil
}

func (e *Editor) inSelection(sel *Range, x, y int) bool {
	switch {
	case sel == nil:
		return false
	case sel.Lines:
		return y >= sel.Lo && y <= sel.Hi
	}
	return y == e.state.Cursor.Y && x >= sel.Lo && x <= sel.Hi
}

func (e *Editor) inMatch(x, y int) bool {
	m := &e.state.Matches
	n := m.matchLength()
	for _, c := range m.Matches {
		if c.Y == y && x >= c.X && x < c.X+n {
			return true
		}
	}
	return false
}

// drawStatusBar: mode, filename and file type on the left, buffer index and
// cursor position on the right.
func (e *Editor) drawStatusBar() {
	s := e.state
	y := s.Viewport.Height - 2
	width := s.Viewport.Width
	barFg, barBg := e.palette.Get(ColorStatusBar)
	for x := 0; x < width; x++ {
		e.screen.SetCell(x, y, ' ', barFg, barBg)
	}

	modeFg, modeBg := e.palette.Get(e.modeColor())
	x := drawString(e.screen, 0, y, " "+e.mode.String()+" ", modeFg, modeBg)

	name := " " + s.Filename
	if s.Modified {
		name += " [+]"
	}
	x = drawString(e.screen, x, y, name, barFg, barBg)
	drawString(e.screen, x, y, " ["+s.Syntax.FileType()+"]", barFg, barBg)

	right := fmt.Sprintf(" [%d/%d]  %d:%d ", e.manager.Current()+1, e.manager.Len(), s.Cursor.Y+1, s.Cursor.X+1)
	drawString(e.screen, width-runewidth.StringWidth(right), y, right, barFg, barBg)
}

func (e *Editor) modeColor() ColorName {
	switch e.mode {
	case ModeInsert:
		return ColorInsertMode
	case ModeVisual:
		return ColorVisualMode
	case ModeCommand:
		return ColorCommandMode
	}
	return ColorNormalMode
}

// drawMessage paints the bottom row: the command line while in Command mode,
// the last message otherwise.
func (e *Editor) drawMessage() {
	y := e.state.Viewport.Height - 1
	fg, bg := e.palette.Get(ColorMessage)
	for x := 0; x < e.state.Viewport.Width; x++ {
		e.screen.SetCell(x, y, ' ', fg, bg)
	}

	text := e.message
	if e.mode == ModeCommand {
		text = string(e.commandBuffer)
	}
	drawString(e.screen, 0, y, text, fg, bg)
}

// placeCursor shows the terminal cursor at the editing position.
func (e *Editor) placeCursor() {
	s := e.state
	if e.mode == ModeCommand {
		x := runewidth.StringWidth(string(e.commandBuffer[:e.commandCursorX]))
		e.screen.SetCursor(x, s.Viewport.Height-1)
		return
	}

	line := s.currentLine()
	from := min(s.Viewport.X, len(line))
	to := max(min(s.Cursor.X, len(line)), from)
	x := gutterWidth + runewidth.StringWidth(string(line[from:to]))
	e.screen.SetCursor(x, s.Cursor.Y-s.Viewport.Y)
}

// drawString writes text from column x and returns the column after it.
func drawString(screen Screen, x, y int, text string, fg, bg termbox.Attribute) int {
	for _, r := range text {
		screen.SetCell(x, y, r, fg, bg)
		x += cellWidth(r)
	}
	return x
}

// cellWidth is the number of terminal columns r occupies; zero-width runes
// still take a cell so the cursor arithmetic stays in step.
func cellWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
