package main

// Input processing engine. Raw terminal input is decoded into InputEvent
// values, and Handle dispatches each one to the handler of the current mode.

import (
	"bytes"
	"fmt"

	"github.com/nsf/termbox-go"
)

// Mode represents the current operational state of the editor.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeCommand:
		return "COMMAND"
	}
	return "NORMAL"
}

// EventKind tags an InputEvent.
type EventKind int

const (
	EventRune EventKind = iota
	EventEnter
	EventBackspace
	EventTab
	EventEscape
	EventArrow
	EventResize
)

// Modifier held together with an arrow key.
type Modifier int

const (
	ModNone Modifier = iota
	ModShift
	ModCtrl
)

// InputEvent is a decoded key press or terminal resize.
type InputEvent struct {
	Kind   EventKind
	Rune   rune      // EventRune.
	Dir    Direction // EventArrow.
	Mod    Modifier  // EventArrow.
	Width  int       // EventResize.
	Height int       // EventResize.
}

func runeEvent(r rune) InputEvent {
	return InputEvent{Kind: EventRune, Rune: r}
}

func arrowEvent(dir Direction, mod Modifier) InputEvent {
	return InputEvent{Kind: EventArrow, Dir: dir, Mod: mod}
}

// Outcome tells the main loop whether to keep going.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeQuit
	OutcomeQuitAndSave
)

// modifierPrefix starts the xterm sequence for a modified arrow key:
// ESC [ 1 ; <modifier> <arrow>.
var modifierPrefix = []byte("\x1b[1;")

// decodeInput splits a chunk of raw terminal input into events. Modified
// arrows are decoded here; everything else goes through parse (termbox's own
// parser in production).
func decodeInput(raw []byte, parse func([]byte) termbox.Event) ([]InputEvent, error) {
	var events []InputEvent
	for len(raw) > 0 {
		if bytes.HasPrefix(raw, modifierPrefix) && len(raw) >= len(modifierPrefix)+2 {
			mod, arrow := raw[len(modifierPrefix)], raw[len(modifierPrefix)+1]
			if ev, ok := decodeModifiedArrow(mod, arrow); ok {
				events = append(events, ev)
			}
			raw = raw[len(modifierPrefix)+2:]
			continue
		}

		ev := parse(raw)
		if ev.Type == termbox.EventNone || ev.N <= 0 {
			return events, ioError("decode input", "", fmt.Errorf("unrecognized sequence %q", raw))
		}
		if in, ok := translateEvent(ev); ok {
			events = append(events, in)
		}
		raw = raw[ev.N:]
	}
	return events, nil
}

// decodeModifiedArrow maps the modifier digit and arrow letter of a modified
// arrow sequence. Unknown modifiers are dropped.
func decodeModifiedArrow(mod, arrow byte) (InputEvent, bool) {
	var m Modifier
	switch mod {
	case '2':
		m = ModShift
	case '5':
		m = ModCtrl
	default:
		return InputEvent{}, false
	}

	switch arrow {
	case 'A':
		return arrowEvent(DirUp, m), true
	case 'B':
		return arrowEvent(DirDown, m), true
	case 'C':
		return arrowEvent(DirRight, m), true
	case 'D':
		return arrowEvent(DirLeft, m), true
	}
	return InputEvent{}, false
}

// translateEvent maps a termbox event onto an InputEvent.
func translateEvent(ev termbox.Event) (InputEvent, bool) {
	switch ev.Type {
	case termbox.EventResize:
		return InputEvent{Kind: EventResize, Width: ev.Width, Height: ev.Height}, true
	case termbox.EventKey:
	default:
		return InputEvent{}, false
	}

	switch ev.Key {
	case termbox.KeyEnter:
		return InputEvent{Kind: EventEnter}, true
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return InputEvent{Kind: EventBackspace}, true
	case termbox.KeyTab:
		return InputEvent{Kind: EventTab}, true
	case termbox.KeyEsc:
		return InputEvent{Kind: EventEscape}, true
	case termbox.KeySpace:
		return runeEvent(' '), true
	case termbox.KeyArrowLeft:
		return arrowEvent(DirLeft, ModNone), true
	case termbox.KeyArrowRight:
		return arrowEvent(DirRight, ModNone), true
	case termbox.KeyArrowUp:
		return arrowEvent(DirUp, ModNone), true
	case termbox.KeyArrowDown:
		return arrowEvent(DirDown, ModNone), true
	}

	if ev.Key == 0 && ev.Ch != 0 {
		return runeEvent(ev.Ch), true
	}
	return InputEvent{}, false
}

// Handle processes a single event to completion.
func (e *Editor) Handle(ev InputEvent) (Outcome, error) {
	switch ev.Kind {
	case EventResize:
		e.resize(ev.Width, ev.Height)
		return OutcomeContinue, nil
	case EventEscape:
		e.commandBuffer = nil
		e.commandCursorX = 0
		e.mode = ModeNormal
		e.state.Dirty = true
		return OutcomeContinue, nil
	case EventArrow:
		if ev.Mod != ModNone {
			return OutcomeContinue, e.handleModifiedArrow(ev)
		}
	}

	switch e.mode {
	case ModeNormal:
		e.handleNormalMode(ev)
	case ModeInsert:
		e.handleInsertMode(ev)
	case ModeVisual:
		e.handleVisualMode(ev)
	case ModeCommand:
		return e.handleCommandMode(ev)
	}
	return OutcomeContinue, nil
}

// handleModifiedArrow: Shift+Left/Right jump by token, Shift+Up/Down by
// paragraph, Ctrl+Left/Right switch buffers.
func (e *Editor) handleModifiedArrow(ev InputEvent) error {
	s := e.state
	switch ev.Mod {
	case ModShift:
		switch ev.Dir {
		case DirLeft, DirRight:
			return e.state.jumpWord(ev.Dir)
		case DirUp, DirDown:
			s.moveByParagraph(ev.Dir, Config.ParagraphSize)
		}
	case ModCtrl:
		switch ev.Dir {
		case DirLeft, DirRight:
			e.switchBuffer(ev.Dir)
		}
	}
	return nil
}

// handleNormalMode processes keyboard input when the editor is in Normal mode.
func (e *Editor) handleNormalMode(ev InputEvent) {
	s := e.state
	switch ev.Kind {
	case EventArrow:
		s.moveCursor(ev.Dir)
		return
	case EventRune:
	default:
		return
	}

	switch ev.Rune {
	case 'v', 'V':
		e.visual = Selection{X: s.Cursor.X, Y: s.Cursor.Y, SelectLine: ev.Rune == 'V'}
		e.mode = ModeVisual
	case 'd', 'y':
		// Line selection on the current line; the next d/y acts on it.
		e.visual = Selection{X: s.Cursor.X, Y: s.Cursor.Y, SelectLine: true}
		e.mode = ModeVisual
	case 'p':
		s.pasteAt(e.clipboard)
	case 'o':
		s.insertLineBreak(false)
		e.mode = ModeInsert
	case 'i':
		e.mode = ModeInsert
	case 'n':
		s.nextMatch()
	case 'b':
		s.previousMatch()
	case ':':
		e.commandBuffer = []rune{':'}
		e.commandCursorX = 1
		e.commandHistoryIdx = -1
		e.mode = ModeCommand
	}
	s.Dirty = true
}

// handleInsertMode processes keyboard input when the editor is in Insert mode.
func (e *Editor) handleInsertMode(ev InputEvent) {
	s := e.state
	switch ev.Kind {
	case EventRune:
		s.insertChar(ev.Rune)
	case EventEnter:
		s.insertLineBreak(true)
	case EventBackspace:
		s.removeCharBefore()
	case EventTab:
		s.insertTab(Config.TabWidth)
	case EventArrow:
		s.moveCursor(ev.Dir)
	}
}

// handleVisualMode extends the selection with the arrows; y copies it and d
// cuts it, both returning to Normal mode.
func (e *Editor) handleVisualMode(ev InputEvent) {
	s := e.state
	switch ev.Kind {
	case EventArrow:
		s.moveCursor(ev.Dir)
	case EventRune:
		switch ev.Rune {
		case 'y':
			e.copySelection()
			e.mode = ModeNormal
		case 'd':
			r := e.copySelection()
			s.deleteRange(r)
			e.mode = ModeNormal
		}
	}
	// The selection highlight follows the cursor.
	s.Dirty = true
}

// handleCommandMode edits the command line; Enter executes it.
func (e *Editor) handleCommandMode(ev InputEvent) (Outcome, error) {
	e.state.Dirty = true
	switch ev.Kind {
	case EventRune:
		e.commandBuffer = append(e.commandBuffer, 0)
		copy(e.commandBuffer[e.commandCursorX+1:], e.commandBuffer[e.commandCursorX:])
		e.commandBuffer[e.commandCursorX] = ev.Rune
		e.commandCursorX++
	case EventBackspace:
		if e.commandCursorX > 0 {
			e.commandBuffer = append(e.commandBuffer[:e.commandCursorX-1], e.commandBuffer[e.commandCursorX:]...)
			e.commandCursorX--
		}
		if len(e.commandBuffer) == 0 {
			e.mode = ModeNormal
		}
	case EventArrow:
		switch ev.Dir {
		case DirLeft:
			e.commandCursorX = max(e.commandCursorX-1, 0)
		case DirRight:
			e.commandCursorX = min(e.commandCursorX+1, len(e.commandBuffer))
		case DirUp:
			e.commands.NavigateHistoryUp()
		case DirDown:
			e.commands.NavigateHistoryDown()
		}
	case EventEnter:
		cmd := string(e.commandBuffer)
		e.commandBuffer = nil
		e.commandCursorX = 0
		e.mode = ModeNormal
		return e.commands.HandleAndSaveToHistory(cmd)
	}
	return OutcomeContinue, nil
}
