package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawState(t *rapid.T) *EditingState {
	text := rapid.SliceOfN(rapid.StringMatching(`[a-cé ]{0,12}`), 1, 30).Draw(t, "lines")
	s := newTestState(text...)
	s.Viewport.Width = rapid.IntRange(4, 40).Draw(t, "width")
	s.Viewport.Height = rapid.IntRange(3, 20).Draw(t, "height")
	s.Cursor.Y = rapid.IntRange(0, len(s.Lines)-1).Draw(t, "y")
	s.Cursor.X = rapid.IntRange(0, len(s.currentLine())).Draw(t, "x")
	s.Clamp = s.Cursor.X
	return s
}

func TestClampCursor_Property_StaysOnLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		s.Clamp = rapid.IntRange(0, 100).Draw(t, "clamp")

		s.clampCursor()

		require.GreaterOrEqual(t, s.Cursor.X, 0)
		require.LessOrEqual(t, s.Cursor.X, len(s.currentLine()))
	})
}

func TestInsertRemove_Property_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		r := rapid.SampledFrom([]rune("xyz 界!")).Draw(t, "rune")
		before := string(s.currentLine())
		cursor := s.Cursor

		s.insertChar(r)
		s.removeCharBefore()

		require.Equal(t, before, string(s.currentLine()))
		require.Equal(t, cursor, s.Cursor)
	})
}

func TestCutPaste_Property_Characters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		anchor := Selection{X: rapid.IntRange(0, len(s.currentLine())).Draw(t, "anchor"), Y: s.Cursor.Y}
		before := linesOf(s)

		r := s.selectionRange(anchor)
		clip := s.copyRange(r)
		s.deleteRange(r)
		s.pasteAt(clip)

		require.Equal(t, before, linesOf(s))
	})
}

func TestCopyPaste_Property_Lines(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		anchor := Selection{Y: rapid.IntRange(0, len(s.Lines)-1).Draw(t, "anchor"), SelectLine: true}
		before := linesOf(s)

		r := s.selectionRange(anchor)
		clip := s.copyRange(r)
		s.Cursor.Y = r.Hi
		s.pasteAt(clip)

		n := r.Hi - r.Lo + 1
		after := linesOf(s)
		require.Len(t, after, len(before)+n)
		require.Equal(t, before[r.Lo:r.Hi+1], after[r.Hi+1:r.Hi+1+n])

		// Removing the pasted copy gives back the original document.
		restored := append(append([]string{}, after[:r.Hi+1]...), after[r.Hi+1+n:]...)
		require.Equal(t, before, restored)
	})
}

func TestSearch_Property_NoMatch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		query := rapid.StringMatching(`z[a-c]{0,3}`).Draw(t, "query")
		cursor, viewport := s.Cursor, s.Viewport

		s.search(query)
		s.nextMatch()
		s.previousMatch()

		require.True(t, s.Matches.Empty())
		require.Equal(t, cursor, s.Cursor)
		require.Equal(t, viewport, s.Viewport)
	})
}

func TestSearch_Property_MatchesAreReal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		query := rapid.StringMatching(`[a-c]{1,2}`).Draw(t, "query")

		s.search(query)

		n := s.Matches.matchLength()
		lastY := -1
		for _, m := range s.Matches.Matches {
			require.Greater(t, m.Y, lastY)
			require.Equal(t, query, string(s.Lines[m.Y][m.X:m.X+n]))
			lastY = m.Y
		}
	})
}

func TestFrame_Property_CursorVisible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		steps := rapid.SliceOfN(rapid.IntRange(0, 7), 0, 60).Draw(t, "steps")

		for _, step := range steps {
			switch step {
			case 0, 1, 2, 3:
				s.moveCursor(Direction(step))
			case 4:
				s.insertChar('q')
			case 5:
				s.removeCharBefore()
			case 6:
				s.insertLineBreak(true)
			case 7:
				s.moveByParagraph(DirDown, 5)
			}
			s.clampCursor()
			s.frameCursor()

			require.GreaterOrEqual(t, s.Cursor.Y, 0)
			require.Less(t, s.Cursor.Y, len(s.Lines))
			require.LessOrEqual(t, s.Cursor.X, len(s.currentLine()))
			require.GreaterOrEqual(t, s.Cursor.Y, s.Viewport.Y)
			require.Less(t, s.Cursor.Y, s.Viewport.Y+s.textRows())
			require.GreaterOrEqual(t, s.Cursor.X, s.Viewport.X)
			require.Less(t, s.Cursor.X, s.Viewport.X+s.textColumns())
		}
	})
}

func TestCloseBuffer_Property_LastIsNoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		s.Filename = "only"
		m := NewBufferManager(s, memFiles{"only": linesOf(s)}.read)

		for range rapid.IntRange(1, 5).Draw(t, "closes") {
			require.NoError(t, m.Close(s))
		}
		require.Equal(t, 1, m.Len())
		require.Equal(t, 0, m.Current())
	})
}

func TestSwitchBuffers_Property_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawState(t)
		files := memFiles{"a": linesOf(s), "b": {"b"}}
		s.Filename = "a"
		m := NewBufferManager(s, files.read)

		other := newTestState("b")
		other.Filename = "b"
		m.Load(other)

		s.search(rapid.StringMatching(`[a-c]`).Draw(t, "query"))
		s.Cursor.Y = rapid.IntRange(0, len(s.Lines)-1).Draw(t, "y")
		s.Cursor.X = rapid.IntRange(0, len(s.currentLine())).Draw(t, "x")
		s.clampCursor()
		s.frameCursor()
		cursor, viewport, matches := s.Cursor, s.Viewport, s.Matches.clone()

		m.Save(s)
		require.NoError(t, m.Next(s))
		m.Save(s)
		require.NoError(t, m.Previous(s))

		require.Equal(t, cursor, s.Cursor)
		require.Equal(t, viewport, s.Viewport)
		require.Equal(t, matches, s.Matches)
	})
}
