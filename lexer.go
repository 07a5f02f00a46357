package main

// Tokenizer backends behind SyntaxHighlighter. Each one splits a single line
// into tokens whose text, concatenated, is the line itself.

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	sitter "github.com/mitjafelicijan/go-tree-sitter"
)

type tokenizer interface {
	tokenize(line string) ([]Token, error)
	name() string
}

func newToken(text string, c Category) Token {
	return Token{Text: []rune(text), Category: c}
}

// treeSitterLexer parses the line with a tree-sitter grammar and emits one
// token per leaf node. Gaps between leaves (whitespace) become default tokens.
type treeSitterLexer struct {
	parser *sitter.Parser
}

func newTreeSitterLexer(lang *sitter.Language) *treeSitterLexer {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &treeSitterLexer{parser: parser}
}

func (l *treeSitterLexer) name() string { return "tree-sitter" }

func (l *treeSitterLexer) tokenize(line string) ([]Token, error) {
	if line == "" {
		return nil, nil
	}
	tree, err := l.parser.ParseCtx(context.Background(), nil, []byte(line))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var tokens []Token
	pos := 0

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.ChildCount() == 0 || isAtomicNode(n.Type()) {
			start, end := int(n.StartByte()), min(int(n.EndByte()), len(line))
			start = max(start, pos)
			if end <= start {
				return
			}
			if start > pos {
				tokens = append(tokens, newToken(line[pos:start], CategoryDefault))
			}
			tokens = append(tokens, newToken(line[start:end], nodeCategory(n)))
			pos = end
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())

	if pos < len(line) {
		tokens = append(tokens, newToken(line[pos:], CategoryDefault))
	}
	return tokens, nil
}

// isAtomicNode reports node types whose children are not worth splitting.
func isAtomicNode(t string) bool {
	return strings.Contains(t, "string") || strings.Contains(t, "comment") ||
		t == "char_literal" || t == "rune_literal"
}

// nodeCategory maps a tree-sitter node to a token category.
func nodeCategory(n *sitter.Node) Category {
	t := n.Type()
	switch {
	case strings.Contains(t, "string"), t == "char_literal", t == "rune_literal":
		return CategoryString
	case strings.Contains(t, "comment"):
		return CategoryDefault
	}

	switch t {
	case "int_literal", "integer", "number", "number_literal", "float_literal", "float":
		return CategoryInteger
	case "type_identifier", "primitive_type", "predefined_type", "builtin_type", "sized_type_specifier":
		return CategoryType
	}

	if !n.IsNamed() {
		r, _ := utf8.DecodeRuneInString(t)
		if unicode.IsLetter(r) {
			return CategoryKeyword
		}
		return CategoryOperator
	}
	return CategoryDefault
}

// chromaLexer covers file types without a bundled grammar.
type chromaLexer struct {
	lexer chroma.Lexer
}

func newChromaLexer(l chroma.Lexer) *chromaLexer {
	return &chromaLexer{lexer: chroma.Coalesce(l)}
}

func (l *chromaLexer) name() string { return "chroma" }

func (l *chromaLexer) tokenize(line string) ([]Token, error) {
	it, err := l.lexer.Tokenise(nil, line)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	pos := 0
	for _, tok := range it.Tokens() {
		value := tok.Value
		// chroma appends a trailing newline to its input.
		if pos+len(value) > len(line) {
			value = value[:len(line)-pos]
		}
		if value == "" {
			continue
		}
		if !strings.HasPrefix(line[pos:], value) {
			return nil, fmt.Errorf("token %q does not match input at byte %d", value, pos)
		}
		tokens = append(tokens, newToken(value, chromaCategory(tok.Type)))
		pos += len(value)
	}
	if pos < len(line) {
		tokens = append(tokens, newToken(line[pos:], CategoryDefault))
	}
	return tokens, nil
}

func chromaCategory(tt chroma.TokenType) Category {
	switch {
	case tt == chroma.KeywordType, tt == chroma.NameClass, tt == chroma.NameBuiltin:
		return CategoryType
	case tt.InCategory(chroma.Keyword):
		return CategoryKeyword
	case tt.InSubCategory(chroma.LiteralString):
		return CategoryString
	case tt.InSubCategory(chroma.LiteralNumber):
		return CategoryInteger
	case tt.InCategory(chroma.Operator):
		return CategoryOperator
	}
	return CategoryDefault
}

// keywordLexer splits a line into words, whitespace runs, quoted strings and
// symbols. Multi-character operators listed in the syntax definition are kept
// together.
type keywordLexer struct {
	operators map[string]bool
}

func (l *keywordLexer) name() string { return "keywords" }

func (l *keywordLexer) tokenize(line string) ([]Token, error) {
	runes := []rune(line)
	var tokens []Token

	for i := 0; i < len(runes); {
		r := runes[i]
		j := i + 1
		c := CategoryDefault

		switch {
		case isWordRune(r):
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
		case unicode.IsSpace(r):
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
		case r == '"' || r == '\'':
			c = CategoryString
			for j < len(runes) && runes[j] != r {
				if runes[j] == '\\' {
					j++
				}
				j++
			}
			// Include the closing quote when there is one.
			j = min(j+1, len(runes))
		default:
			// Longest listed operator starting here, else a lone symbol.
			for n := 3; n > 1; n-- {
				if i+n <= len(runes) && l.operators[string(runes[i:i+n])] {
					j = i + n
					break
				}
			}
		}

		tokens = append(tokens, Token{Text: runes[i:j:j], Category: c})
		i = j
	}
	return tokens, nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
