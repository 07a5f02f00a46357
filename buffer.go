package main

// Snapshots of per-file editing state and the manager that switches the live
// EditingState between them. Snapshots are copies: the live state is written
// into the current snapshot on save/switch and copied back out on reload.

import (
	"errors"
	"io/fs"
)

// BufferSnapshot is the saved editing state of one open file.
type BufferSnapshot struct {
	filename string
	cursor   Cursor
	viewport Viewport
	matches  MatchSet
	clamp    int
	syntax   Highlighter
	pending  [][]rune // Unsaved document edits; nil when the file on disk is current.
}

// Filename of the snapshot.
func (b *BufferSnapshot) Filename() string {
	return b.filename
}

// LineReader reads a file into document lines.
type LineReader func(filename string) ([][]rune, error)

// BufferManager holds one snapshot per open file and the index of the current one.
type BufferManager struct {
	buffers []*BufferSnapshot
	current int
	read    LineReader
}

// NewBufferManager snapshots the live state as the first buffer.
func NewBufferManager(s *EditingState, read LineReader) *BufferManager {
	m := &BufferManager{read: read}
	m.Load(s)
	return m
}

// Len is the number of open buffers.
func (m *BufferManager) Len() int {
	return len(m.buffers)
}

// Current is the index of the current buffer.
func (m *BufferManager) Current() int {
	return m.current
}

// Buffer returns the snapshot at index i.
func (m *BufferManager) Buffer(i int) *BufferSnapshot {
	return m.buffers[i]
}

func snapshot(s *EditingState) *BufferSnapshot {
	b := &BufferSnapshot{
		filename: s.Filename,
		cursor:   s.Cursor,
		viewport: s.Viewport,
		matches:  s.Matches.clone(),
		clamp:    s.Clamp,
		syntax:   s.Syntax,
	}
	if s.Modified {
		b.pending = cloneLines(s.Lines)
	}
	return b
}

func cloneLines(lines [][]rune) [][]rune {
	out := make([][]rune, len(lines))
	for i, line := range lines {
		out[i] = append([]rune(nil), line...)
	}
	return out
}

// Load appends a snapshot of the live state without switching to it.
func (m *BufferManager) Load(s *EditingState) {
	m.buffers = append(m.buffers, snapshot(s))
}

// Save overwrites the current snapshot with the live state.
func (m *BufferManager) Save(s *EditingState) {
	m.buffers[m.current] = snapshot(s)
}

// Close removes the current buffer and switches to the previous one. It does
// nothing when only one buffer is open. If the previous buffer cannot be
// reloaded the closed one is put back and stays current.
func (m *BufferManager) Close(s *EditingState) error {
	if len(m.buffers) <= 1 {
		return nil
	}
	buffers, current := m.buffers, m.current

	remaining := make([]*BufferSnapshot, 0, len(buffers)-1)
	remaining = append(remaining, buffers[:current]...)
	remaining = append(remaining, buffers[current+1:]...)
	m.buffers = remaining
	m.current = max(current-1, 0)

	if err := m.Reload(s); err != nil {
		m.buffers, m.current = buffers, current
		return err
	}
	return nil
}

// Next moves to the following buffer, staying on the last one.
func (m *BufferManager) Next(s *EditingState) error {
	return m.Select(s, m.current+1)
}

// Previous moves to the preceding buffer, staying on the first one.
func (m *BufferManager) Previous(s *EditingState) error {
	return m.Select(s, m.current-1)
}

// Select makes buffer i (clamped to the open range) current and reloads it.
// The index is left unchanged if the reload fails.
func (m *BufferManager) Select(s *EditingState, i int) error {
	i = max(min(i, len(m.buffers)-1), 0)
	prev := m.current
	m.current = i
	if err := m.Reload(s); err != nil {
		m.current = prev
		return err
	}
	return nil
}

// Reload copies the current snapshot into the live state. The document is
// re-read from disk unless the snapshot carries unsaved edits; a file that
// does not exist yet loads as an empty document.
func (m *BufferManager) Reload(s *EditingState) error {
	b := m.buffers[m.current]

	if b.pending != nil {
		s.SetLines(cloneLines(b.pending))
		s.Modified = true
	} else {
		lines, err := m.read(b.filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		s.SetLines(lines)
		s.Modified = false
	}

	s.Filename = b.filename
	s.Cursor = b.cursor
	s.Viewport.X = b.viewport.X
	s.Viewport.Y = b.viewport.Y
	s.Matches = b.matches.clone()
	s.Clamp = b.clamp
	s.Syntax = b.syntax

	// The file may have shrunk on disk since the snapshot.
	s.Cursor.Y = min(s.Cursor.Y, len(s.Lines)-1)
	s.Cursor.X = min(s.Cursor.X, len(s.Lines[s.Cursor.Y]))
	s.Dirty = true
	return nil
}
