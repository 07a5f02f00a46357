package main

// Provides a way to view all detected file types and how each one is
// highlighted.

import (
	"fmt"
	"io"
	"strings"
)

// PrintInfo prints a summary table of all supported languages: extensions,
// syntax definition and the tokenizer backend that will be used.
func PrintInfo(w io.Writer, palette Palette, configDir string) {
	fmt.Fprintf(w, "%-12s %-30s %-12s %-12s\n", "Name", "Extensions", "Syntax", "Backend")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, ft := range fileTypes {
		sample := "file"
		if len(ft.Extensions) > 0 {
			sample = ft.Extensions[0]
		}

		backend := "-"
		if h, err := NewSyntaxHighlighter(sample, palette, configDir); err != nil {
			backend = "error: " + err.Error()
		} else {
			backend = h.Backend()
		}

		fmt.Fprintf(w, "%-12s %-30s %-12s %-12s\n", ft.Name, strings.Join(ft.Extensions, " "), ft.Syntax, backend)
	}
}
