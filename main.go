package main

// The entry point of the te editor. It handles command-line flags, the
// print-and-exit diagnostics, the terminal interface (termbox), and runs the
// main editor loop on the file named on the command line.

import (
	"flag"
	"fmt"
	"os"

	"github.com/nsf/termbox-go"
)

// Version of the editor, injected at build time.
var Version = "dev"

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: te [FILE]")
	flag.PrintDefaults()
}

func main() {
	InitConfig()

	if Config.ShowVersion {
		fmt.Println(Version)
		return
	}

	if Config.ShowColors || Config.ShowInfo {
		palette, err := LoadTheme(Config.ConfigDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if Config.ShowColors {
			PrintColors(palette)
		} else {
			PrintInfo(os.Stdout, palette, Config.ConfigDir)
		}
		return
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	os.Exit(run(flag.Arg(0)))
}

// run owns the terminal for the lifetime of the editor and returns the exit
// code. termbox is closed before anything is printed.
func run(path string) int {
	if err := termbox.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init termbox: %v\n", err)
		return 1
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)

	editor, err := NewEditor(termboxScreen{}, newTermboxInput())
	if err != nil {
		termbox.Close()
		fmt.Fprintf(os.Stderr, "Failed to create new editor instance -> `%v`\n", err)
		return 1
	}

	if err := editor.Open(path); err != nil {
		editor.log(fmt.Sprintf("Failed to open `%s`", path))
		editor.addLog("File", err.Error())
	}

	err = editor.Run()
	termbox.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run main loop: `%v`\n", err)
		return 1
	}
	return 0
}
