package main

// Literal substring search over the document. A search keeps at most one
// match per line, in line order, and the cursor steps through them with
// nextMatch/previousMatch.

import (
	"strings"
	"unicode/utf8"
)

// MatchSet is the result of the last search.
type MatchSet struct {
	Query   string
	Matches []Cursor
	Index   int
}

// Empty reports whether the last search found nothing.
func (m *MatchSet) Empty() bool {
	return len(m.Matches) == 0
}

// clone returns a copy that does not share the match slice.
func (m MatchSet) clone() MatchSet {
	m.Matches = append([]Cursor(nil), m.Matches...)
	return m
}

// search rebuilds the match set for query and jumps to the first match.
func (s *EditingState) search(query string) {
	s.Matches = MatchSet{Query: query}
	if query == "" {
		return
	}

	for y, line := range s.Lines {
		text := string(line)
		if i := strings.Index(text, query); i >= 0 {
			s.Matches.Matches = append(s.Matches.Matches, Cursor{
				X: utf8.RuneCountInString(text[:i]),
				Y: y,
			})
		}
	}
	s.gotoMatch()
}

func (s *EditingState) nextMatch() {
	if s.Matches.Empty() {
		return
	}
	if s.Matches.Index < len(s.Matches.Matches)-1 {
		s.Matches.Index++
	}
	s.gotoMatch()
}

func (s *EditingState) previousMatch() {
	if s.Matches.Empty() {
		return
	}
	if s.Matches.Index > 0 {
		s.Matches.Index--
	}
	s.gotoMatch()
}

// gotoMatch puts the cursor on the indexed match and scrolls it to the top of
// the viewport.
func (s *EditingState) gotoMatch() {
	if s.Matches.Index >= len(s.Matches.Matches) {
		return
	}
	m := s.Matches.Matches[s.Matches.Index]
	if m.Y >= len(s.Lines) {
		return
	}
	s.Cursor = m
	s.Clamp = m.X
	s.Viewport.Y = m.Y
	s.Dirty = true
}

// matchLength is the rune length of the current query.
func (m *MatchSet) matchLength() int {
	return utf8.RuneCountInString(m.Query)
}
