package main

// Color palette and theme used by the editor. Maps semantic color names (like
// ColorNormalMode) to specific terminal attributes (foreground and background).
// The built-in palette can be overridden by a colors.json in the config dir.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nsf/termbox-go"
)

// To see available colors execute `te -colors`.

// Color represents a pair of foreground and background terminal attributes.
type Color struct {
	Background termbox.Attribute
	Foreground termbox.Attribute
}

// ColorName is an enum-like type for semantic color identifiers.
type ColorName int

const (
	ColorDefault ColorName = iota // Default text and background.

	// Token categories.
	ColorKeyword
	ColorType
	ColorOperator
	ColorInteger
	ColorString

	ColorStatusBar           // Main status bar at the bottom.
	ColorNormalMode          // Status bar indicator for Normal mode.
	ColorInsertMode          // Status bar indicator for Insert mode.
	ColorVisualMode          // Status bar indicator for Visual mode.
	ColorCommandMode         // Status bar indicator for Command mode.
	ColorGutterLineNumber    // Relative line numbers in the left gutter.
	ColorEmptyLineMarker     // The '~' marker for lines beyond EOF.
	ColorVisualModeSelection // Selection color in Visual mode.
	ColorSearchMatch         // Highlighting for found search terms.
	ColorMessage             // The message log line.
)

// colorNames are the keys accepted in colors.json.
var colorNames = map[string]ColorName{
	"default":      ColorDefault,
	"keyword":      ColorKeyword,
	"type":         ColorType,
	"operator":     ColorOperator,
	"integer":      ColorInteger,
	"string":       ColorString,
	"bar":          ColorStatusBar,
	"mode_normal":  ColorNormalMode,
	"mode_insert":  ColorInsertMode,
	"mode_visual":  ColorVisualMode,
	"mode_command": ColorCommandMode,
	"line_numbers": ColorGutterLineNumber,
	"empty_line":   ColorEmptyLineMarker,
	"selection":    ColorVisualModeSelection,
	"search_match": ColorSearchMatch,
	"message":      ColorMessage,
}

// Palette maps each ColorName to its actual visual attributes.
type Palette map[ColorName]Color

// Theme is the built-in palette.
var Theme = Palette{
	ColorDefault: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(254)},

	ColorKeyword:  {Background: termbox.ColorDefault, Foreground: termbox.Attribute(178) | termbox.AttrBold},
	ColorType:     {Background: termbox.ColorDefault, Foreground: termbox.Attribute(112)},
	ColorOperator: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(215)},
	ColorInteger:  {Background: termbox.ColorDefault, Foreground: termbox.Attribute(135)},
	ColorString:   {Background: termbox.ColorDefault, Foreground: termbox.Attribute(37)},

	ColorStatusBar:   {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1)},
	ColorNormalMode:  {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1) | termbox.AttrBold},
	ColorInsertMode:  {Background: termbox.Attribute(58), Foreground: termbox.Attribute(255) | termbox.AttrBold},
	ColorVisualMode:  {Background: termbox.Attribute(30), Foreground: termbox.Attribute(16) | termbox.AttrBold},
	ColorCommandMode: {Background: termbox.Attribute(125), Foreground: termbox.Attribute(255) | termbox.AttrBold},

	ColorGutterLineNumber:    {Background: termbox.ColorDefault, Foreground: termbox.Attribute(244)},
	ColorEmptyLineMarker:     {Background: termbox.ColorDefault, Foreground: termbox.Attribute(244)},
	ColorVisualModeSelection: {Background: termbox.Attribute(46), Foreground: termbox.Attribute(1)},
	ColorSearchMatch:         {Background: termbox.Attribute(166), Foreground: termbox.Attribute(1)},
	ColorMessage:             {Background: termbox.ColorDefault, Foreground: termbox.Attribute(254)},
}

// Get returns the foreground and background attributes for a given semantic name.
func (p Palette) Get(name ColorName) (termbox.Attribute, termbox.Attribute) {
	if c, ok := p[name]; ok {
		return c.Foreground, c.Background
	}
	// Fallback to default if name is not found.
	return termbox.ColorDefault, termbox.ColorDefault
}

type colorEntry struct {
	Fg   *int `json:"fg"`
	Bg   *int `json:"bg"`
	Bold bool `json:"bold"`
}

// LoadTheme returns the built-in palette with the overrides from
// <dir>/colors.json applied. A missing file is not an error.
func LoadTheme(dir string) (Palette, error) {
	palette := make(Palette, len(Theme))
	for name, c := range Theme {
		palette[name] = c
	}
	if dir == "" {
		return palette, nil
	}

	path := filepath.Join(dir, "colors.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return palette, nil
	} else if err != nil {
		return nil, configError("read theme", path, err)
	}

	var entries map[string]colorEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, configError("parse theme", path, err)
	}

	for key, entry := range entries {
		name, ok := colorNames[key]
		if !ok {
			return nil, configError("parse theme", path, fmt.Errorf("unknown color %q", key))
		}
		c := palette[name]
		if entry.Fg != nil {
			c.Foreground = colorAttribute(*entry.Fg)
		}
		if entry.Bg != nil {
			c.Background = colorAttribute(*entry.Bg)
		}
		if entry.Bold {
			c.Foreground |= termbox.AttrBold
		}
		palette[name] = c
	}
	return palette, nil
}

// colorAttribute maps a 256-color index to a termbox attribute; negative
// values select the terminal default.
func colorAttribute(n int) termbox.Attribute {
	if n < 0 || n > 255 {
		return termbox.ColorDefault
	}
	return termbox.Attribute(n)
}
