package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// memFiles is a LineReader over an in-memory file set.
type memFiles map[string][]string

func (m memFiles) read(filename string) ([][]rune, error) {
	text, ok := m[filename]
	if !ok {
		return nil, ioError("open", filename, fs.ErrNotExist)
	}
	return toLines(text...), nil
}

func newStateFor(files memFiles, name string) *EditingState {
	s := newTestState(files[name]...)
	s.Filename = name
	return s
}

func TestBufferManager_LoadDoesNotSwitch(t *testing.T) {
	files := memFiles{"a": {"a1"}, "b": {"b1"}}
	s := newStateFor(files, "a")
	m := NewBufferManager(s, files.read)

	s.SetLines(toLines("b1"))
	s.Filename = "b"
	m.Load(s)

	require.Equal(t, 2, m.Len())
	require.Equal(t, 0, m.Current())
	require.Equal(t, "b", m.Buffer(1).Filename())
}

func TestBufferManager_CloseLastIsNoop(t *testing.T) {
	files := memFiles{"a": {"a1"}}
	s := newStateFor(files, "a")
	m := NewBufferManager(s, files.read)

	require.NoError(t, m.Close(s))
	require.Equal(t, 1, m.Len())
	require.Equal(t, 0, m.Current())
	require.Equal(t, []string{"a1"}, linesOf(s))
}

func TestBufferManager_CloseSwitchesToPrevious(t *testing.T) {
	files := memFiles{"a": {"a1"}, "b": {"b1"}, "c": {"c1"}}
	s := newStateFor(files, "a")
	m := NewBufferManager(s, files.read)
	for _, name := range []string{"b", "c"} {
		s.Filename = name
		m.Load(s)
	}
	require.NoError(t, m.Select(s, 1))
	require.Equal(t, "b", s.Filename)

	require.NoError(t, m.Close(s))
	require.Equal(t, 2, m.Len())
	require.Equal(t, 0, m.Current())
	require.Equal(t, "a", s.Filename)
	require.Equal(t, []string{"a1"}, linesOf(s))

	// Closing the first buffer moves to what is now the first.
	require.NoError(t, m.Close(s))
	require.Equal(t, 1, m.Len())
	require.Equal(t, "c", s.Filename)
}

func TestBufferManager_NextPreviousClamp(t *testing.T) {
	files := memFiles{"a": {"a1"}, "b": {"b1"}}
	s := newStateFor(files, "a")
	m := NewBufferManager(s, files.read)
	s.Filename = "b"
	m.Load(s)

	require.NoError(t, m.Previous(s))
	require.Equal(t, 0, m.Current())

	require.NoError(t, m.Next(s))
	require.NoError(t, m.Next(s))
	require.Equal(t, 1, m.Current())
	require.Equal(t, []string{"b1"}, linesOf(s))
	require.True(t, s.Dirty)
}

func TestBufferManager_SwitchRoundTripRestoresState(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "some text with foo"
	}
	files := memFiles{"a": lines, "b": {"b1"}}
	s := newStateFor(files, "a")
	m := NewBufferManager(s, files.read)
	s.Filename = "b"
	s.SetLines(toLines("b1"))
	m.Load(s)
	s.SetLines(toLines(lines...))
	s.Filename = "a"

	s.search("foo")
	s.nextMatch()
	s.Cursor = Cursor{X: 7, Y: 60}
	s.Viewport.X, s.Viewport.Y = 2, 50
	s.Clamp = 7
	wantCursor, wantViewport, wantMatches := s.Cursor, s.Viewport, s.Matches.clone()

	m.Save(s)
	require.NoError(t, m.Next(s))
	require.Equal(t, "b", s.Filename)
	require.Equal(t, Cursor{}, s.Cursor)

	m.Save(s)
	require.NoError(t, m.Previous(s))
	require.Equal(t, wantCursor, s.Cursor)
	require.Equal(t, wantViewport, s.Viewport)
	require.Equal(t, wantMatches, s.Matches)
	require.Equal(t, 7, s.Clamp)
}

func TestBufferManager_UnsavedEditsSurviveSwitch(t *testing.T) {
	files := memFiles{"a": {"a1"}, "b": {"b1"}}
	s := newStateFor(files, "a")
	m := NewBufferManager(s, files.read)
	s.Filename = "b"
	m.Load(s)
	s.Filename = "a"

	s.Cursor = Cursor{X: 2, Y: 0}
	s.insertChar('!')
	m.Save(s)
	require.NoError(t, m.Next(s))
	require.False(t, s.Modified)

	m.Save(s)
	require.NoError(t, m.Previous(s))
	require.Equal(t, []string{"a1!"}, linesOf(s))
	require.True(t, s.Modified)
}

func TestBufferManager_ReloadClampsToShrunkenFile(t *testing.T) {
	files := memFiles{"a": {"one", "two", "three"}, "b": {"b"}}
	s := newStateFor(files, "a")
	s.Cursor = Cursor{X: 4, Y: 2}
	m := NewBufferManager(s, files.read)
	s.Filename = "b"
	m.Load(s)

	files["a"] = []string{"x"}
	require.NoError(t, m.Select(s, 0))
	require.Equal(t, Cursor{X: 1, Y: 0}, s.Cursor)
}

func TestBufferManager_ReloadMissingFileIsEmpty(t *testing.T) {
	files := memFiles{}
	s := newTestState("scratch")
	s.Filename = "gone"
	m := NewBufferManager(s, files.read)

	require.NoError(t, m.Reload(s))
	require.Equal(t, []string{""}, linesOf(s))
}

func TestBufferManager_ReloadErrorKeepsIndex(t *testing.T) {
	boom := errors.New("boom")
	s := newTestState("a")
	s.Filename = "a"
	m := NewBufferManager(s, func(name string) ([][]rune, error) {
		if name == "b" {
			return nil, ioError("read", name, boom)
		}
		return toLines(name), nil
	})
	s.Filename = "b"
	m.Load(s)
	s.Filename = "a"

	require.ErrorIs(t, m.Next(s), boom)
	require.Equal(t, 0, m.Current())
	require.Equal(t, "a", s.Filename)
}

func TestBufferManager_CloseReloadErrorKeepsBuffers(t *testing.T) {
	s := newTestState("a")
	s.Filename = "a"
	m := NewBufferManager(s, func(name string) ([][]rune, error) {
		if name == "a" {
			return nil, ioError("open", name, fs.ErrPermission)
		}
		return toLines(name), nil
	})
	s.Filename = "b"
	m.Load(s)
	m.current = 1

	require.ErrorIs(t, m.Close(s), fs.ErrPermission)
	require.Equal(t, 2, m.Len())
	require.Equal(t, 1, m.Current())
	require.Equal(t, "b", s.Filename)

	// Storing the live state must not overwrite the other buffer.
	m.Save(s)
	require.Equal(t, "a", m.Buffer(0).Filename())
	require.Equal(t, "b", m.Buffer(1).Filename())
}

// ============================================================================
// Editor-level buffer flows
// ============================================================================

func TestOpenBufferThenPreviousRestoresFirstFile(t *testing.T) {
	dir := t.TempDir()
	lines := make([]byte, 0)
	for range 80 {
		lines = append(lines, "line\n"...)
	}
	first := writeFile(t, dir, "first.txt", string(lines))
	other := writeFile(t, dir, "other.txt", "other\n")

	e, _ := newTestEditor(t)
	require.NoError(t, e.Open(first))

	press(t, e, arrowEvent(DirDown, ModShift))
	for range 3 {
		press(t, e, arrowEvent(DirRight, ModNone))
	}
	require.NoError(t, e.render())
	wantCursor, wantViewport := e.state.Cursor, e.state.Viewport
	require.Equal(t, Cursor{X: 3, Y: 47}, wantCursor)

	runCommand(t, e, "O "+other)
	require.Equal(t, 2, e.manager.Len())
	require.Equal(t, 1, e.manager.Current())
	require.Equal(t, other, e.state.Filename)
	require.Equal(t, []string{"other"}, linesOf(e.state))
	require.Equal(t, Cursor{}, e.state.Cursor)

	press(t, e, arrowEvent(DirLeft, ModCtrl))
	require.Equal(t, 0, e.manager.Current())
	require.Equal(t, first, e.state.Filename)
	require.Equal(t, wantCursor, e.state.Cursor)
	require.Equal(t, wantViewport, e.state.Viewport)
}

func TestOpenBufferKeepsUnsavedEdits(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", "abc\n")
	other := writeFile(t, dir, "other.txt", "xyz\n")

	e, _ := newTestEditor(t)
	require.NoError(t, e.Open(first))
	typeText(t, e, "i123")
	press(t, e, InputEvent{Kind: EventEscape})

	runCommand(t, e, "O "+other)
	press(t, e, arrowEvent(DirLeft, ModCtrl))

	require.Equal(t, []string{"123abc"}, linesOf(e.state))
	require.True(t, e.state.Modified)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "abc\n", string(data))
}

func TestOpenBufferInsertsAfterCurrentSwitchesToNewest(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a\n")
	b := writeFile(t, dir, "b.txt", "b\n")
	c := writeFile(t, dir, "c.txt", "c\n")

	e, _ := newTestEditor(t)
	require.NoError(t, e.Open(a))
	runCommand(t, e, "O "+b)
	press(t, e, arrowEvent(DirLeft, ModCtrl))
	require.Equal(t, 0, e.manager.Current())

	runCommand(t, e, "O "+c)
	require.Equal(t, 3, e.manager.Len())
	require.Equal(t, 2, e.manager.Current())
	require.Equal(t, c, e.state.Filename)
}

func TestOpenBufferUnreadablePathLeavesState(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a\n")

	e, _ := newTestEditor(t)
	require.NoError(t, e.Open(a))

	// A directory cannot be read as a file.
	runCommand(t, e, "O "+dir)
	require.Equal(t, 1, e.manager.Len())
	require.Equal(t, a, e.state.Filename)
	require.Equal(t, "Failed to open `"+dir+"`", e.message)
}

func TestOpenBufferMissingPathCreatesEmptyBuffer(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a\n")
	missing := filepath.Join(dir, "new.go")

	e, _ := newTestEditor(t)
	require.NoError(t, e.Open(a))
	runCommand(t, e, "O "+missing)

	require.Equal(t, 2, e.manager.Len())
	require.Equal(t, missing, e.state.Filename)
	require.Equal(t, []string{""}, linesOf(e.state))
	require.Equal(t, "go", e.state.Syntax.FileType())
}

func TestCloseBufferCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a\n")
	b := writeFile(t, dir, "b.txt", "b\n")

	e, _ := newTestEditor(t)
	require.NoError(t, e.Open(a))

	runCommand(t, e, "qb")
	require.Equal(t, 1, e.manager.Len())
	require.Equal(t, "Cannot close the last buffer", e.message)

	runCommand(t, e, "O "+b)
	runCommand(t, e, "qb")
	require.Equal(t, 1, e.manager.Len())
	require.Equal(t, a, e.state.Filename)
}
