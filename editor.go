package main

// Core of the application. Holds the live editing state, the mode and the
// collaborators (screen, input, buffer manager, highlighter factory), and
// drives the prepare/render/read/handle loop.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// newBufferName is shown until a file is opened.
const newBufferName = "*New Buffer*"

// Editor is the main controller struct that holds all global state.
type Editor struct {
	state             *EditingState  // Live document, cursor and viewport.
	manager           *BufferManager // Snapshots of every open file.
	mode              Mode           // Current editor mode.
	visual            Selection      // Anchor of the Visual mode selection.
	clipboard         Clipboard      // Last copied or cut text.
	commandBuffer     []rune         // Input for the : command line.
	commandCursorX    int            // Cursor position within commandBuffer.
	commandHistory    []string       // History of executed commands.
	commandHistoryIdx int            // Current position in command history (-1 = not navigating).
	commands          *Command       // Command handler instance.
	message           string         // Status message shown at the bottom.
	logMessages       []string       // Ring of recent log lines.
	maxLogMessages    int            // Maximum capacity of the log ring buffer.
	palette           Palette

	screen         Screen
	input          EventSource
	readLines      LineReader
	newHighlighter func(filename string) (Highlighter, error)
}

// NewEditor builds an editor on an empty document. The theme and the
// highlighter for the empty buffer are loaded here, so a broken config
// directory fails construction.
func NewEditor(screen Screen, input EventSource) (*Editor, error) {
	palette, err := LoadTheme(Config.ConfigDir)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		state:             NewEditingState(),
		mode:              ModeNormal,
		commandHistoryIdx: -1,
		maxLogMessages:    Config.NumLogs,
		palette:           palette,
		screen:            screen,
		input:             input,
		readLines:         readFileLines,
	}
	e.commands = &Command{e: e}
	e.newHighlighter = func(filename string) (Highlighter, error) {
		return NewSyntaxHighlighter(filename, e.palette, Config.ConfigDir)
	}

	e.state.Filename = newBufferName
	if e.state.Syntax, err = e.newHighlighter(newBufferName); err != nil {
		return nil, err
	}
	e.state.Viewport.Width, e.state.Viewport.Height = screen.Size()
	e.manager = NewBufferManager(e.state, e.readLines)
	return e, nil
}

// addLog appends a timestamped line to the log ring and, when enabled, to
// the log file.
func (e *Editor) addLog(group, msg string) {
	t := time.Now()
	timestamp := fmt.Sprintf("[%02d:%02d:%02d]", t.Hour(), t.Minute(), t.Second())
	logMsg := fmt.Sprintf("%s [%s] %s", timestamp, group, msg)
	e.logMessages = append(e.logMessages, logMsg)

	if len(e.logMessages) > e.maxLogMessages {
		e.logMessages = e.logMessages[len(e.logMessages)-e.maxLogMessages:]
	}

	if Config.UseLogFile {
		f, err := os.OpenFile(Config.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			f.WriteString(logMsg + "\n")
		}
	}
}

// log shows msg on the message line and records it.
func (e *Editor) log(msg string) {
	e.message = msg
	e.state.Dirty = true
	e.addLog("Editor", msg)
}

// readFileLines reads a file into lines, dropping line terminators.
func readFileLines(filename string) ([][]rune, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, ioError("open", filename, err)
	}
	defer f.Close()

	var lines [][]rune
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, []rune(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ioError("read", filename, err)
		}
	}
	return lines, nil
}

// openFile replaces the live document with the contents of path. A missing
// file still becomes the live document (empty, named path) and the
// not-exist error is returned for the caller to report; any other error
// leaves the live state untouched.
func (e *Editor) openFile(path string) error {
	lines, readErr := e.readLines(path)
	if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
		return readErr
	}
	syntax, err := e.newHighlighter(path)
	if err != nil {
		return err
	}

	s := e.state
	s.SetLines(lines)
	s.Filename = path
	s.Syntax = syntax
	s.Matches = MatchSet{}
	s.Modified = false
	e.addLog("File", fmt.Sprintf("Opened %s (%d lines, %s)", path, len(s.Lines), syntax.FileType()))
	return readErr
}

// Open loads path into the current buffer. Used for the file named on the
// command line.
func (e *Editor) Open(path string) error {
	err := e.openFile(path)
	e.manager.Save(e.state)
	return err
}

// openBuffer opens path as a new buffer and switches to it. The live state
// is stored into the current snapshot first so no edits are lost.
func (e *Editor) openBuffer(path string) {
	e.manager.Save(e.state)
	if err := e.openFile(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.log(fmt.Sprintf("Failed to open `%s`", path))
			e.addLog("File", err.Error())
			return
		}
		e.log(fmt.Sprintf("New file `%s`", path))
	}

	e.state.Reset()
	e.manager.Load(e.state)
	if err := e.manager.Select(e.state, e.manager.Len()-1); err != nil {
		e.log(err.Error())
		return
	}
	e.addLog("Buffer", fmt.Sprintf("Opened buffer %d/%d", e.manager.Current()+1, e.manager.Len()))
}

// switchBuffer stores the live state and moves to the neighbouring buffer.
func (e *Editor) switchBuffer(dir Direction) {
	e.manager.Save(e.state)

	var err error
	if dir == DirLeft {
		err = e.manager.Previous(e.state)
	} else {
		err = e.manager.Next(e.state)
	}
	if err != nil {
		e.log(err.Error())
		return
	}
	e.addLog("Buffer", fmt.Sprintf("Switched to %s", e.state.Filename))
}

// save writes the live document to its file, one newline after each line.
func (e *Editor) save() error {
	s := e.state
	f, err := os.Create(s.Filename)
	if err != nil {
		return ioError("create", s.Filename, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range s.Lines {
		w.WriteString(string(line))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return ioError("write", s.Filename, err)
	}
	if err := f.Close(); err != nil {
		return ioError("close", s.Filename, err)
	}
	return nil
}

// saveAndLog saves the live document and reports the result.
func (e *Editor) saveAndLog() bool {
	name := e.state.Filename
	if err := e.save(); err != nil {
		e.log(fmt.Sprintf("failed to write to `%s`", name))
		e.addLog("File", err.Error())
		return false
	}
	e.state.Modified = false
	e.manager.Save(e.state)
	e.log(fmt.Sprintf("wrote to `%s`", name))
	return true
}

// copySelection copies the Visual selection into the clipboard and returns
// its range.
func (e *Editor) copySelection() Range {
	r := e.state.selectionRange(e.visual)
	e.clipboard = e.state.copyRange(r)

	if Config.SystemClipboard {
		if err := clipboard.WriteAll(e.clipboard.String()); err != nil {
			e.addLog("Clipboard", err.Error())
		}
	}
	return r
}

// resize adopts new terminal dimensions.
func (e *Editor) resize(width, height int) {
	e.state.Viewport.Width = width
	e.state.Viewport.Height = height
	e.state.Dirty = true
}

// Run is the main loop: prepare the frame, render, then handle every event
// decoded from the next chunk of input. It returns nil once the user quits.
func (e *Editor) Run() error {
	for {
		if err := e.render(); err != nil {
			return err
		}

		events, err := e.input.ReadEvents()
		if err != nil {
			return err
		}
		for _, ev := range events {
			outcome, err := e.Handle(ev)
			if err != nil {
				return err
			}
			switch outcome {
			case OutcomeQuit:
				return nil
			case OutcomeQuitAndSave:
				if e.saveAndLog() {
					return nil
				}
			}
		}
	}
}
