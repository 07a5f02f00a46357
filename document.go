package main

// The live editing state: the document (lines of runes), the cursor, the
// viewport over the document and the sticky clamp column. Every mutation
// keeps the cursor on a valid line; the column is reconciled by clampCursor
// and the viewport by frameCursor before each render.

import "strings"

const (
	reservedRows = 2 // Status bar and message log below the text area.
	gutterWidth  = 3 // Relative line numbers: "07 " or "-> ".
)

// Cursor is a position in the document.
type Cursor struct {
	X int // Column index (0-based).
	Y int // Line index (0-based).
}

// Viewport is the visible window over the document, in terminal cells.
type Viewport struct {
	X      int // Horizontal scroll.
	Y      int // First visible line.
	Height int
	Width  int
}

// Direction of a cursor movement.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Selection is the anchor captured when entering Visual mode.
type Selection struct {
	X, Y       int
	SelectLine bool
}

// Range is a normalized, inclusive span of a selection. Forward is set when
// the anchor lies before the cursor.
type Range struct {
	Lo, Hi  int
	Lines   bool
	Forward bool
}

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool {
	return r.Lo > r.Hi
}

// Clipboard holds the most recently copied region.
type Clipboard struct {
	Lines    [][]rune
	Linewise bool
}

// String joins the clipboard lines; line-wise text ends with a newline.
func (c Clipboard) String() string {
	parts := make([]string, len(c.Lines))
	for i, line := range c.Lines {
		parts[i] = string(line)
	}
	text := strings.Join(parts, "\n")
	if c.Linewise {
		text += "\n"
	}
	return text
}

// EditingState groups everything the editing operations mutate.
type EditingState struct {
	Lines    [][]rune
	Cursor   Cursor
	Viewport Viewport
	Clamp    int // Last deliberately chosen column.
	Matches  MatchSet
	Filename string
	Syntax   Highlighter
	Modified bool // Document differs from the file on disk.
	Dirty    bool // The next render must repaint everything.
}

// NewEditingState returns an empty document (one empty line).
func NewEditingState() *EditingState {
	return &EditingState{
		Lines: [][]rune{{}},
		Dirty: true,
	}
}

// SetLines replaces the document wholesale. An empty slice becomes a single
// empty line.
func (s *EditingState) SetLines(lines [][]rune) {
	if len(lines) == 0 {
		lines = [][]rune{{}}
	}
	s.Lines = lines
	if s.Cursor.Y >= len(s.Lines) {
		s.Cursor.Y = len(s.Lines) - 1
	}
	s.Dirty = true
}

// Reset moves the cursor and viewport back to the top of the document.
func (s *EditingState) Reset() {
	s.Cursor = Cursor{}
	s.Viewport.X = 0
	s.Viewport.Y = 0
	s.Clamp = 0
	s.Dirty = true
}

func (s *EditingState) currentLine() []rune {
	return s.Lines[s.Cursor.Y]
}

// textRows is the number of document lines the viewport shows.
func (s *EditingState) textRows() int {
	return max(s.Viewport.Height-reservedRows, 1)
}

// textColumns is the number of document columns the viewport shows.
func (s *EditingState) textColumns() int {
	return max(s.Viewport.Width-gutterWidth, 1)
}

// moveCursor moves one step in dir. Vertical moves scroll the viewport by a
// single line when the cursor would leave it.
func (s *EditingState) moveCursor(dir Direction) {
	switch dir {
	case DirLeft:
		if s.Cursor.X > 0 {
			s.Cursor.X--
		}
		s.Clamp = s.Cursor.X
	case DirRight:
		if s.Cursor.X < len(s.currentLine()) {
			s.Cursor.X++
		}
		s.Clamp = s.Cursor.X
	case DirUp:
		if s.Cursor.Y > 0 {
			if s.Cursor.Y <= s.Viewport.Y {
				s.Viewport.Y--
				s.Dirty = true
			}
			s.Cursor.Y--
		}
	case DirDown:
		if s.Cursor.Y < len(s.Lines)-1 {
			if s.Cursor.Y >= s.Viewport.Y+s.textRows()-1 {
				s.Viewport.Y++
				s.Dirty = true
			}
			s.Cursor.Y++
		}
	}
}

// clampCursor restores the sticky column, bounded by the current line.
func (s *EditingState) clampCursor() {
	s.Cursor.X = min(s.Clamp, len(s.currentLine()))
}

// frameCursor scrolls the viewport so the cursor is visible.
func (s *EditingState) frameCursor() {
	rows, cols := s.textRows(), s.textColumns()
	vp := s.Viewport

	if s.Cursor.Y < s.Viewport.Y {
		s.Viewport.Y = s.Cursor.Y
	} else if s.Cursor.Y >= s.Viewport.Y+rows {
		s.Viewport.Y = s.Cursor.Y - rows + 1
	}
	if s.Cursor.X < s.Viewport.X {
		s.Viewport.X = s.Cursor.X
	} else if s.Cursor.X >= s.Viewport.X+cols {
		s.Viewport.X = s.Cursor.X - cols + 1
	}

	if vp != s.Viewport {
		s.Dirty = true
	}
}

// insertChar inserts r at the cursor and advances past it.
func (s *EditingState) insertChar(r rune) {
	line := s.currentLine()
	x := s.Cursor.X
	line = append(line, 0)
	copy(line[x+1:], line[x:])
	line[x] = r
	s.Lines[s.Cursor.Y] = line

	s.moveCursor(DirRight)
	s.Modified = true
	s.Dirty = true
}

// removeCharBefore deletes the character left of the cursor. At column 0 the
// line is joined onto the previous one.
func (s *EditingState) removeCharBefore() {
	if s.Cursor.X != 0 {
		s.moveCursor(DirLeft)
		line := s.currentLine()
		s.Lines[s.Cursor.Y] = append(line[:s.Cursor.X], line[s.Cursor.X+1:]...)
	} else if s.Cursor.Y != 0 {
		y := s.Cursor.Y
		joinAt := len(s.Lines[y-1])
		s.Lines[y-1] = append(s.Lines[y-1], s.Lines[y]...)
		s.Lines = append(s.Lines[:y], s.Lines[y+1:]...)
		s.moveCursor(DirUp)
		s.Cursor.X = joinAt
	} else {
		return
	}
	s.Clamp = s.Cursor.X
	s.Modified = true
	s.Dirty = true
}

// insertLineBreak splits the current line at the cursor (split) or opens an
// empty line below it indented like the current one.
func (s *EditingState) insertLineBreak(split bool) {
	y := s.Cursor.Y
	var next []rune
	x := 0
	if split {
		line := s.Lines[y]
		next = append([]rune(nil), line[s.Cursor.X:]...)
		s.Lines[y] = line[:s.Cursor.X:s.Cursor.X]
	} else {
		x = indentation(s.Lines[y])
		next = make([]rune, x)
		for i := range next {
			next[i] = ' '
		}
	}

	s.Lines = append(s.Lines, nil)
	copy(s.Lines[y+2:], s.Lines[y+1:])
	s.Lines[y+1] = next

	s.moveCursor(DirDown)
	s.Cursor.X = x
	s.Clamp = x
	s.Modified = true
	s.Dirty = true
}

// indentation is the length of the leading run of spaces. A blank line has
// none.
func indentation(line []rune) int {
	for i, r := range line {
		if r != ' ' {
			return i
		}
	}
	return 0
}

// insertTab inserts width spaces at the cursor.
func (s *EditingState) insertTab(width int) {
	for range width {
		s.insertChar(' ')
	}
}

// selectionRange combines the anchor with the live cursor. A character
// selection that spans lines is treated as a line selection.
func (s *EditingState) selectionRange(v Selection) Range {
	if v.SelectLine || v.Y != s.Cursor.Y {
		return Range{
			Lo:      min(v.Y, s.Cursor.Y),
			Hi:      max(v.Y, s.Cursor.Y),
			Lines:   true,
			Forward: v.Y < s.Cursor.Y,
		}
	}
	return Range{
		Lo:      min(v.X, s.Cursor.X),
		Hi:      min(max(v.X, s.Cursor.X), len(s.currentLine())-1),
		Forward: v.X < s.Cursor.X,
	}
}

// copyRange returns a copy of the text covered by r.
func (s *EditingState) copyRange(r Range) Clipboard {
	if r.Lines {
		lines := make([][]rune, 0, r.Hi-r.Lo+1)
		for _, line := range s.Lines[r.Lo : r.Hi+1] {
			lines = append(lines, append([]rune(nil), line...))
		}
		return Clipboard{Lines: lines, Linewise: true}
	}
	if r.Empty() {
		return Clipboard{Lines: [][]rune{{}}}
	}
	span := append([]rune(nil), s.currentLine()[r.Lo:r.Hi+1]...)
	return Clipboard{Lines: [][]rune{span}}
}

// deleteRange removes the text covered by r and leaves the cursor at the
// start of the removed span.
func (s *EditingState) deleteRange(r Range) {
	if r.Empty() {
		return
	}

	if r.Lines {
		s.Lines = append(s.Lines[:r.Lo], s.Lines[r.Hi+1:]...)
		if len(s.Lines) == 0 {
			s.Lines = [][]rune{{}}
		}
		if r.Forward {
			for range r.Hi - r.Lo {
				s.moveCursor(DirUp)
			}
		}
		s.Cursor.Y = min(s.Cursor.Y, len(s.Lines)-1)
		s.Cursor.X = min(s.Cursor.X, len(s.currentLine()))
	} else {
		line := s.currentLine()
		s.Lines[s.Cursor.Y] = append(line[:r.Lo], line[r.Hi+1:]...)
		if r.Forward {
			for range r.Hi - r.Lo {
				s.moveCursor(DirLeft)
			}
		}
		s.Cursor.X = min(s.Cursor.X, len(s.currentLine()))
		s.Clamp = s.Cursor.X
	}
	s.Modified = true
	s.Dirty = true
}

// pasteAt inserts the clipboard at the cursor. Lines go below the cursor's
// line; characters go at the cursor column, advancing through them.
func (s *EditingState) pasteAt(clip Clipboard) {
	if len(clip.Lines) == 0 {
		return
	}

	if clip.Linewise {
		y := s.Cursor.Y + 1
		pasted := make([][]rune, 0, len(clip.Lines))
		for _, line := range clip.Lines {
			pasted = append(pasted, append([]rune(nil), line...))
		}
		lines := make([][]rune, 0, len(s.Lines)+len(pasted))
		lines = append(lines, s.Lines[:y]...)
		lines = append(lines, pasted...)
		lines = append(lines, s.Lines[y:]...)
		s.Lines = lines
		s.moveCursor(DirDown)
	} else {
		for _, r := range clip.Lines[0] {
			s.insertChar(r)
		}
	}
	s.Modified = true
	s.Dirty = true
}

// moveByParagraph jumps size lines, putting the target line at
// the top of the viewport.
func (s *EditingState) moveByParagraph(dir Direction, size int) {
	switch dir {
	case DirUp:
		if s.Cursor.Y < size {
			s.Cursor.Y = 0
			s.Viewport.Y = 0
		} else {
			s.Cursor.Y -= size
			s.Viewport.Y = s.Cursor.Y
		}
	case DirDown:
		if s.Cursor.Y+size >= len(s.Lines) {
			s.Cursor.Y = len(s.Lines) - 1
			s.Viewport.Y = len(s.Lines) - 1
		} else {
			s.Cursor.Y += size
			s.Viewport.Y += size
		}
	}
	s.Dirty = true
}

// jumpWord moves to the next or previous token boundary of the current line.
func (s *EditingState) jumpWord(dir Direction) error {
	if s.Syntax == nil {
		return nil
	}
	var (
		x   int
		err error
	)
	switch dir {
	case DirRight:
		x, err = s.Syntax.NextToken(s.currentLine(), s.Cursor.X)
	case DirLeft:
		x, err = s.Syntax.PreviousToken(s.currentLine(), s.Cursor.X)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	s.Cursor.X = min(max(x, 0), len(s.currentLine()))
	s.Clamp = s.Cursor.X
	return nil
}
