package main

// Colon command handler (e.g., :E, :q, :O). It processes strings entered in
// ModeCommand and executes the corresponding actions.

import (
	"errors"
	"strings"
)

// Command provides a context for executing editor commands.
type Command struct {
	e *Editor
}

// IsValidCommand returns true if the command should be saved to history.
func (ch *Command) IsValidCommand(cmd string) bool {
	switch cmd {
	case ":E", ":EQ", ":q", ":qb":
		return true
	}
	return strings.HasPrefix(cmd, ":/") || strings.HasPrefix(cmd, ":O ")
}

// HandleAndSaveToHistory executes a command and saves it to history if valid.
// Consecutive duplicates are stored once.
func (ch *Command) HandleAndSaveToHistory(cmd string) (Outcome, error) {
	ch.e.commandHistoryIdx = -1
	if ch.IsValidCommand(cmd) {
		if len(ch.e.commandHistory) == 0 || ch.e.commandHistory[len(ch.e.commandHistory)-1] != cmd {
			ch.e.commandHistory = append(ch.e.commandHistory, cmd)
		}
	}

	outcome, err := ch.Handle(cmd)
	if err != nil {
		var ee *EditorError
		if errors.As(err, &ee) && ee.Kind == CommandError {
			ch.e.log("Unknown command: `" + cmd + "`")
			return outcome, nil
		}
		ch.e.log(err.Error())
	}
	return outcome, nil
}

// NavigateHistoryUp moves backward through command history.
func (ch *Command) NavigateHistoryUp() {
	if len(ch.e.commandHistory) == 0 {
		return
	}

	if ch.e.commandHistoryIdx == -1 {
		ch.e.commandHistoryIdx = len(ch.e.commandHistory) - 1
	} else if ch.e.commandHistoryIdx > 0 {
		ch.e.commandHistoryIdx--
	}

	ch.e.commandBuffer = []rune(ch.e.commandHistory[ch.e.commandHistoryIdx])
	ch.e.commandCursorX = len(ch.e.commandBuffer)
}

// NavigateHistoryDown moves forward through command history. Walking past
// the newest entry restores an empty prompt.
func (ch *Command) NavigateHistoryDown() {
	if ch.e.commandHistoryIdx == -1 {
		return
	}

	ch.e.commandHistoryIdx++
	if ch.e.commandHistoryIdx >= len(ch.e.commandHistory) {
		ch.e.commandHistoryIdx = -1
		ch.e.commandBuffer = []rune{':'}
	} else {
		ch.e.commandBuffer = []rune(ch.e.commandHistory[ch.e.commandHistoryIdx])
	}
	ch.e.commandCursorX = len(ch.e.commandBuffer)
}

// Handle parses and executes a command string. Unrecognised input is
// reported as a CommandError.
func (ch *Command) Handle(cmd string) (Outcome, error) {
	switch {
	case cmd == ":E":
		ch.e.saveAndLog()
	case cmd == ":EQ":
		return OutcomeQuitAndSave, nil
	case cmd == ":q":
		return OutcomeQuit, nil
	case cmd == ":qb":
		ch.closeBuffer()
	case strings.HasPrefix(cmd, ":/"):
		ch.search(strings.TrimPrefix(cmd, ":/"))
	case cmd == ":O":
		ch.e.log("No filename specified")
	case strings.HasPrefix(cmd, ":O "):
		path := strings.TrimSpace(strings.TrimPrefix(cmd, ":O "))
		if path == "" {
			ch.e.log("No filename specified")
			break
		}
		ch.e.openBuffer(path)
	default:
		return OutcomeContinue, commandError(cmd)
	}
	return OutcomeContinue, nil
}

func (ch *Command) search(query string) {
	s := ch.e.state
	s.search(query)
	switch {
	case query == "":
		ch.e.log("Search cleared")
	case s.Matches.Empty():
		ch.e.log("Pattern not found: " + query)
	}
}

// closeBuffer drops the current buffer unless it is the last one open.
func (ch *Command) closeBuffer() {
	if ch.e.manager.Len() <= 1 {
		ch.e.log("Cannot close the last buffer")
		return
	}
	name := ch.e.state.Filename
	if err := ch.e.manager.Close(ch.e.state); err != nil {
		ch.e.log(err.Error())
		return
	}
	ch.e.addLog("Buffer", "Closed "+name)
}
