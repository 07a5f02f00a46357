package main

// Global configuration of the editor. Settings are populated from command-line
// flags during initialization.

import (
	"flag"
	"os"
	"path/filepath"
)

// Configuration holds all adjustable settings for the editor.
type Configuration struct {
	TabWidth        int    // Number of spaces Tab inserts in Insert mode.
	ParagraphSize   int    // Lines jumped by Shift+Up/Down.
	ConfigDir       string // Directory holding colors.json and syntax/*.json overrides.
	UseLogFile      bool   // Whether to write debug logs to a file.
	LogFilePath     string // Where to store the debug logs.
	NumLogs         int    // Capacity of the in-memory debug log ring.
	SystemClipboard bool   // Mirror copies into the OS clipboard.
	ShowColors      bool   // Command-line flag to show available colors and exit.
	ShowInfo        bool   // Command-line flag to show file types and exit.
	ShowVersion     bool   // Command-line flag to show version and exit.
}

// Config is the global configuration instance.
var Config = DefaultConfig()

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Configuration {
	return Configuration{
		TabWidth:      4,
		ParagraphSize: 47,
		ConfigDir:     defaultConfigDir(),
		LogFilePath:   "/tmp/te-debug.log",
		NumLogs:       50,
	}
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "te")
}

// InitConfig sets up command-line flags and parses them into the global Config.
func InitConfig() {
	flag.Usage = usage

	flag.IntVar(&Config.TabWidth, "tab-width", Config.TabWidth, "Spaces inserted by Tab")
	flag.IntVar(&Config.ParagraphSize, "paragraph", Config.ParagraphSize, "Lines jumped by Shift+Up/Down")
	flag.StringVar(&Config.ConfigDir, "config-dir", Config.ConfigDir, "Directory with colors.json and syntax/ overrides")
	flag.BoolVar(&Config.UseLogFile, "log", false, "Enable logging to file")
	flag.StringVar(&Config.LogFilePath, "log-path", Config.LogFilePath, "Path to log file")
	flag.IntVar(&Config.NumLogs, "num-logs", Config.NumLogs, "Number of debug log lines kept in memory")
	flag.BoolVar(&Config.SystemClipboard, "system-clipboard", false, "Mirror copies into the system clipboard")
	flag.BoolVar(&Config.ShowColors, "colors", false, "Show available colors")
	flag.BoolVar(&Config.ShowInfo, "info", false, "Show file types and highlighter backends")
	flag.BoolVar(&Config.ShowVersion, "version", false, "Show version")

	flag.Parse()

	if Config.TabWidth < 1 {
		Config.TabWidth = 1
	}
	if Config.ParagraphSize < 1 {
		Config.ParagraphSize = 1
	}
	if Config.NumLogs < 1 {
		Config.NumLogs = 1
	}
}
