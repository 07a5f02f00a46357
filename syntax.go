package main

// Syntax highlighting. A Highlighter turns a line into classified tokens and
// answers word-boundary queries. The SyntaxHighlighter picks a tokenizer
// backend per file type (tree-sitter, chroma or the keyword lexer) and refines
// its output with the file type's syntax definition.

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/nsf/termbox-go"
)

//go:embed syntax/*.json
var SyntaxFS embed.FS

// Category classifies a token for coloring.
type Category int

const (
	CategoryDefault Category = iota
	CategoryKeyword
	CategoryType
	CategoryOperator
	CategoryInteger
	CategoryString
)

func (c Category) String() string {
	switch c {
	case CategoryKeyword:
		return "keyword"
	case CategoryType:
		return "type"
	case CategoryOperator:
		return "operator"
	case CategoryInteger:
		return "integer"
	case CategoryString:
		return "string"
	}
	return "default"
}

// Token is a run of characters sharing one category.
type Token struct {
	Text     []rune
	Category Category
}

// Highlighter is the contract the editor core relies on.
type Highlighter interface {
	// Tokens yields the classified tokens of line. Concatenating their text
	// reproduces the line.
	Tokens(line []rune) iter.Seq2[Token, error]
	// NextToken returns the column of the next token boundary after x.
	NextToken(line []rune, x int) (int, error)
	// PreviousToken returns the column of the token boundary before x.
	PreviousToken(line []rune, x int) (int, error)
	// Style returns the colors for a category.
	Style(c Category) (termbox.Attribute, termbox.Attribute)
	// FileType is the lowercase file type name shown in the status bar.
	FileType() string
}

// SyntaxDef lists the words a file type colors specially.
type SyntaxDef struct {
	Keywords  []string `json:"keywords"`
	Types     []string `json:"types"`
	Operators []string `json:"operators"`
}

// LoadSyntaxDef reads syntax/<name>.json from dir, falling back to the
// embedded definition. A definition that exists but does not parse is an error.
func LoadSyntaxDef(name, dir string) (*SyntaxDef, error) {
	file := name + ".json"
	var (
		data []byte
		path string
		err  error
	)
	if dir != "" {
		path = filepath.Join(dir, "syntax", file)
		data, err = os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, configError("read syntax", path, err)
		}
	}
	if data == nil {
		path = "syntax/" + file
		data, err = SyntaxFS.ReadFile(path)
		if err != nil {
			// No definition bundled for this type; highlight nothing specially.
			return &SyntaxDef{}, nil
		}
	}

	def := &SyntaxDef{}
	if err := json.Unmarshal(data, def); err != nil {
		return nil, configError("parse syntax", path, err)
	}
	return def, nil
}

// SyntaxHighlighter is the Highlighter used for every open file.
type SyntaxHighlighter struct {
	fileType  *FileType
	lexer     tokenizer
	palette   Palette
	keywords  map[string]bool
	types     map[string]bool
	operators map[string]bool
}

var _ Highlighter = (*SyntaxHighlighter)(nil)

// NewSyntaxHighlighter builds the highlighter for filename. Configuration is
// read from configDir (see LoadSyntaxDef).
func NewSyntaxHighlighter(filename string, palette Palette, configDir string) (*SyntaxHighlighter, error) {
	ft := getFileType(filename)
	def, err := LoadSyntaxDef(ft.Syntax, configDir)
	if err != nil {
		return nil, err
	}

	s := &SyntaxHighlighter{
		fileType:  ft,
		palette:   palette,
		keywords:  toSet(def.Keywords),
		types:     toSet(def.Types),
		operators: toSet(def.Operators),
	}
	s.lexer = s.selectTokenizer(filename)
	return s, nil
}

// selectTokenizer prefers a bundled grammar, then a chroma lexer, then the
// keyword lexer.
func (s *SyntaxHighlighter) selectTokenizer(filename string) tokenizer {
	if s.fileType.Grammar != nil {
		return newTreeSitterLexer(s.fileType.Grammar())
	}
	if l := lexers.Match(filepath.Base(filename)); l != nil && !isPlainText(l.Config().Name) {
		return newChromaLexer(l)
	}
	return &keywordLexer{operators: s.operators}
}

func isPlainText(name string) bool {
	return strings.EqualFold(name, "plaintext") || strings.EqualFold(name, "text")
}

// Backend names the tokenizer in use.
func (s *SyntaxHighlighter) Backend() string {
	return s.lexer.name()
}

func (s *SyntaxHighlighter) FileType() string {
	return strings.ToLower(s.fileType.Name)
}

func (s *SyntaxHighlighter) Tokens(line []rune) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		tokens, err := s.lexer.tokenize(string(line))
		if err != nil {
			yield(Token{}, fmt.Errorf("%s: %w", s.lexer.name(), err))
			return
		}
		for _, tok := range tokens {
			tok.Category = s.classify(tok)
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// classify applies the syntax definition on top of the backend's category.
// String literals keep their category.
func (s *SyntaxHighlighter) classify(tok Token) Category {
	if tok.Category == CategoryString {
		return tok.Category
	}
	text := string(tok.Text)
	switch {
	case s.keywords[text]:
		return CategoryKeyword
	case s.types[text]:
		return CategoryType
	case s.operators[text]:
		return CategoryOperator
	case isInteger(tok.Text):
		return CategoryInteger
	}
	return tok.Category
}

func (s *SyntaxHighlighter) NextToken(line []rune, x int) (int, error) {
	start := 0
	for tok, err := range s.Tokens(line) {
		if err != nil {
			return x, err
		}
		if start > x {
			return start, nil
		}
		start += len(tok.Text)
	}
	if start > x {
		return min(start, len(line)), nil
	}
	return x, nil
}

func (s *SyntaxHighlighter) PreviousToken(line []rune, x int) (int, error) {
	end := 0
	for tok, err := range s.Tokens(line) {
		if err != nil {
			return x, err
		}
		end += len(tok.Text)
		if end >= x {
			return end - len(tok.Text), nil
		}
	}
	return x, nil
}

func (s *SyntaxHighlighter) Style(c Category) (termbox.Attribute, termbox.Attribute) {
	switch c {
	case CategoryKeyword:
		return s.palette.Get(ColorKeyword)
	case CategoryType:
		return s.palette.Get(ColorType)
	case CategoryOperator:
		return s.palette.Get(ColorOperator)
	case CategoryInteger:
		return s.palette.Get(ColorInteger)
	case CategoryString:
		return s.palette.Get(ColorString)
	}
	return s.palette.Get(ColorDefault)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func isInteger(text []rune) bool {
	if len(text) == 0 {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
