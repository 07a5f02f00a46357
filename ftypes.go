package main

// Supported file types, their extensions, and which syntax definition and
// tree-sitter grammar drive their highlighting.

import (
	"path/filepath"

	sitter "github.com/mitjafelicijan/go-tree-sitter"
	"github.com/mitjafelicijan/go-tree-sitter/bash"
	"github.com/mitjafelicijan/go-tree-sitter/c"
	"github.com/mitjafelicijan/go-tree-sitter/cpp"
	"github.com/mitjafelicijan/go-tree-sitter/css"
	"github.com/mitjafelicijan/go-tree-sitter/golang"
	"github.com/mitjafelicijan/go-tree-sitter/javascript"
	"github.com/mitjafelicijan/go-tree-sitter/lua"
	"github.com/mitjafelicijan/go-tree-sitter/python"
	"github.com/mitjafelicijan/go-tree-sitter/sql"
	"github.com/mitjafelicijan/go-tree-sitter/typescript/typescript"
)

// FileType represents the highlighting configuration for a specific language.
type FileType struct {
	Name       string                  // Display name of the file type.
	Extensions []string                // File extensions (e.g., .go, .py) or filenames (e.g., Makefile).
	Syntax     string                  // Name of the syntax definition under syntax/.
	Grammar    func() *sitter.Language // Tree-sitter grammar, nil when none is bundled.
}

// fileTypes is a global list of all supported languages in the editor. The
// last entry is the fallback.
var fileTypes = []*FileType{
	{Name: "Go", Extensions: []string{".go"}, Syntax: "go", Grammar: golang.GetLanguage},
	{Name: "C", Extensions: []string{".c", ".h"}, Syntax: "c", Grammar: c.GetLanguage},
	{Name: "C++", Extensions: []string{".cpp", ".hpp", ".cc", ".hh", ".cxx", ".hxx"}, Syntax: "c", Grammar: cpp.GetLanguage},
	{Name: "Python", Extensions: []string{".py"}, Syntax: "python", Grammar: python.GetLanguage},
	{Name: "JavaScript", Extensions: []string{".js", ".mjs"}, Syntax: "javascript", Grammar: javascript.GetLanguage},
	{Name: "TypeScript", Extensions: []string{".ts"}, Syntax: "javascript", Grammar: typescript.GetLanguage},
	{Name: "Bash", Extensions: []string{".sh", ".bash"}, Syntax: "bash", Grammar: bash.GetLanguage},
	{Name: "Lua", Extensions: []string{".lua"}, Syntax: "lua", Grammar: lua.GetLanguage},
	{Name: "CSS", Extensions: []string{".css"}, Syntax: "text", Grammar: css.GetLanguage},
	{Name: "SQL", Extensions: []string{".sql"}, Syntax: "sql", Grammar: sql.GetLanguage},
	{Name: "Rust", Extensions: []string{".rs"}, Syntax: "rust"},
	{Name: "Makefile", Extensions: []string{".make", "Makefile", "makefile"}, Syntax: "text"},
	{Name: "Text", Extensions: []string{}, Syntax: "text"},
}

// getFileType detects the file type based on the filename or extension.
func getFileType(filename string) *FileType {
	ext := filepath.Ext(filename)
	base := filepath.Base(filename)
	for _, ft := range fileTypes {
		for _, e := range ft.Extensions {
			// Check if the extension matches or if the base filename (like 'Makefile') matches.
			if e == ext || e == base {
				return ft
			}
		}
	}
	return fileTypes[len(fileTypes)-1]
}
