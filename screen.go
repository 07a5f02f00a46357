package main

// Terminal collaborators. The editor draws through Screen and reads through
// EventSource; the termbox implementations are used in production and tests
// substitute in-memory ones.

import "github.com/nsf/termbox-go"

// Screen is a cell grid that is drawn into and then flushed.
type Screen interface {
	Size() (width, height int)
	Clear(fg, bg termbox.Attribute) error
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	SetCursor(x, y int)
	HideCursor()
	Flush() error
}

// EventSource blocks until input is available and returns the decoded events.
type EventSource interface {
	ReadEvents() ([]InputEvent, error)
}

type termboxScreen struct{}

func (termboxScreen) Size() (int, int) { return termbox.Size() }

func (termboxScreen) Clear(fg, bg termbox.Attribute) error { return termbox.Clear(fg, bg) }

func (termboxScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

func (termboxScreen) SetCursor(x, y int) { termbox.SetCursor(x, y) }

func (termboxScreen) HideCursor() { termbox.HideCursor() }

func (termboxScreen) Flush() error { return termbox.Flush() }

// termboxInput reads raw bytes so modified arrow sequences, which termbox
// does not parse, reach decodeInput intact.
type termboxInput struct {
	buf []byte
}

func newTermboxInput() *termboxInput {
	return &termboxInput{buf: make([]byte, 64)}
}

func (in *termboxInput) ReadEvents() ([]InputEvent, error) {
	ev := termbox.PollRawEvent(in.buf)
	switch ev.Type {
	case termbox.EventError:
		return nil, ioError("poll input", "", ev.Err)
	case termbox.EventResize:
		return []InputEvent{{Kind: EventResize, Width: ev.Width, Height: ev.Height}}, nil
	case termbox.EventRaw:
		data := append([]byte(nil), in.buf[:ev.N]...)
		return decodeInput(data, termbox.ParseEvent)
	}
	return nil, nil
}
