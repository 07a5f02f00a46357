package main

// Error kinds surfaced by the editor. Construction and file errors are reported
// to the user, render errors end the main loop, command errors only reach the
// message area.

import "fmt"

// ErrorKind classifies an EditorError.
type ErrorKind int

const (
	IOError      ErrorKind = iota // File open/create/write failure.
	ConfigError                   // Theme or syntax definition missing or malformed.
	RenderError                   // Highlighter failure while drawing.
	CommandError                  // Malformed command-line input.
)

func (k ErrorKind) String() string {
	switch k {
	case IOError:
		return "io"
	case ConfigError:
		return "config"
	case RenderError:
		return "render"
	case CommandError:
		return "command"
	}
	return "unknown"
}

// EditorError wraps a cause with the operation and (optional) path it came from.
type EditorError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *EditorError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *EditorError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	return &EditorError{Kind: IOError, Op: op, Path: path, Err: err}
}

func configError(op, path string, err error) error {
	return &EditorError{Kind: ConfigError, Op: op, Path: path, Err: err}
}

func renderError(op string, err error) error {
	return &EditorError{Kind: RenderError, Op: op, Err: err}
}

func commandError(cmd string) error {
	return &EditorError{Kind: CommandError, Op: "Unknown command: `" + cmd + "`"}
}
