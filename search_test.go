package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch_FirstMatchPerLine(t *testing.T) {
	s := newTestState("xabc", "yyab")

	s.search("ab")

	require.Equal(t, []Cursor{{X: 1, Y: 0}, {X: 2, Y: 1}}, s.Matches.Matches)
	require.Equal(t, 0, s.Matches.Index)
	require.Equal(t, Cursor{X: 1, Y: 0}, s.Cursor)
}

func TestSearch_OneMatchPerLine(t *testing.T) {
	s := newTestState("abab ab")
	s.search("ab")
	require.Equal(t, []Cursor{{X: 0, Y: 0}}, s.Matches.Matches)
}

func TestSearch_RuneColumns(t *testing.T) {
	s := newTestState("héllo wörld")
	s.search("wö")
	require.Equal(t, []Cursor{{X: 6, Y: 0}}, s.Matches.Matches)
	require.Equal(t, 2, s.Matches.matchLength())
}

func TestSearch_NoMatchLeavesCursor(t *testing.T) {
	s := newTestState("abc", "def")
	s.Cursor = Cursor{X: 2, Y: 1}

	s.search("zzz")

	require.True(t, s.Matches.Empty())
	require.Equal(t, Cursor{X: 2, Y: 1}, s.Cursor)
}

func TestSearch_EmptyQueryClears(t *testing.T) {
	s := newTestState("abc")
	s.search("b")
	require.False(t, s.Matches.Empty())

	s.search("")
	require.True(t, s.Matches.Empty())
	require.Equal(t, "", s.Matches.Query)
}

func TestNextPreviousMatch(t *testing.T) {
	lines := make([]string, 60)
	lines[3] = "foo"
	lines[20] = "  foo"
	lines[55] = "foo!"
	s := newTestState(lines...)

	s.search("foo")
	require.Equal(t, Cursor{X: 0, Y: 3}, s.Cursor)

	s.nextMatch()
	require.Equal(t, Cursor{X: 2, Y: 20}, s.Cursor)
	require.Equal(t, 20, s.Viewport.Y)
	require.Equal(t, 2, s.Clamp)

	s.nextMatch()
	s.nextMatch()
	require.Equal(t, 2, s.Matches.Index)
	require.Equal(t, Cursor{X: 0, Y: 55}, s.Cursor)

	s.previousMatch()
	s.previousMatch()
	s.previousMatch()
	require.Equal(t, 0, s.Matches.Index)
	require.Equal(t, Cursor{X: 0, Y: 3}, s.Cursor)
}

func TestNextPreviousMatch_EmptyIsNoop(t *testing.T) {
	s := newTestState("abc", "def")
	s.Cursor = Cursor{X: 1, Y: 1}
	s.Dirty = false

	s.nextMatch()
	s.previousMatch()

	require.Equal(t, Cursor{X: 1, Y: 1}, s.Cursor)
	require.False(t, s.Dirty)
}

func TestMatchSet_CloneIsIndependent(t *testing.T) {
	m := MatchSet{Query: "a", Matches: []Cursor{{X: 1}}}
	c := m.clone()
	c.Matches[0].X = 9
	require.Equal(t, 1, m.Matches[0].X)
}
