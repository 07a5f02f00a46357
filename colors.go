package main

// Utility to print all 256 terminal colors followed by the active theme. This
// is useful for picking values for colors.json and checking that the
// terminal supports the expected color range.

import (
	"fmt"
	"os"
	"slices"

	"github.com/nsf/termbox-go"
)

// PrintColors initializes termbox, draws the color grid and the theme, and
// waits for a key press.
func PrintColors(palette Palette) {
	err := termbox.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init termbox: %v\n", err)
		return
	}
	defer termbox.Close()

	termbox.SetOutputMode(termbox.Output256)
	drawColors(termboxScreen{}, palette)
	termbox.PollEvent()
}

// drawColors paints the 256-color grid and, below it, one sample per theme
// entry.
func drawColors(screen Screen, palette Palette) {
	screen.Clear(termbox.ColorDefault, termbox.ColorDefault)
	w, _ := screen.Size()

	// Adjust grid columns based on terminal width.
	cols := 16
	if w < 80 {
		cols = 8
	}

	for i := 0; i < 256; i++ {
		row := (i / cols) * 2
		col := (i % cols) * 5

		bg := colorAttribute(i)
		fg := termbox.ColorWhite
		// Ensure text is readable against light backgrounds.
		if i == 7 || i > 240 {
			fg = termbox.ColorBlack
		}

		for j, r := range fmt.Sprintf("%5d", i) {
			screen.SetCell(col+j, row, r, fg, bg)
			screen.SetCell(col+j, row+1, ' ', fg, bg)
		}
	}

	y := (256/cols)*2 + 1
	names := make([]string, 0, len(colorNames))
	for name := range colorNames {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fg, bg := palette.Get(colorNames[name])
		drawString(screen, 0, y, fmt.Sprintf(" %-16s", name), fg, bg)
		y++
	}

	drawString(screen, 0, y+1, "Press any key to exit...", termbox.ColorWhite, termbox.ColorDefault)
	screen.Flush()
}
