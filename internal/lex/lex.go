// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package lex implements the Faber lexical analyzer: a single-pass,
// rune-cursor scanner producing a Token stream ending in EOF. Grounded in
// the original lexer.py's closures-based scanner, structured with the
// teacher's backtrackable rune-buffer idiom (token/lexer.go's nextR/prevR
// pattern) adapted to an eager, non-backtracking scan (Faber's grammar
// needs no rune pushback once a token's lexeme is resolved).
package lex

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/faberlang/faber/internal/diag"
	"github.com/faberlang/faber/internal/token"
)

// Lexer scans a single source file into a Token slice.
type Lexer struct {
	src      string
	filename string
	pos      int // byte offset
	line     int
	lineStart int // byte offset of current line's first byte
}

// New creates a Lexer over src, reporting positions against filename.
func New(filename, src string) *Lexer {
	return &Lexer{src: src, filename: filename, pos: 0, line: 1, lineStart: 0}
}

// Lex tokenizes the entire source, returning the full (unfiltered) token
// stream including Comment and Newline, terminated by exactly one EOF
// token. It fails fast with a positioned *diag.Error on the first byte it
// cannot classify.
func Lex(filename, src string) ([]token.Token, error) {
	return New(filename, src).Lex()
}

func (l *Lexer) locus() diag.Locus {
	return diag.Locus{File: l.filename, Line: l.line, Col: l.pos - l.lineStart + 1, Index: l.pos}
}

func (l *Lexer) length() int { return len(l.src) }

// peekAt returns the rune starting at the absolute byte offset byteOffset,
// or 0 if that offset is past the end of the source.
func (l *Lexer) peekAt(byteOffset int) rune {
	if byteOffset >= l.length() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[byteOffset:])
	return r
}

func (l *Lexer) peek() rune { return l.peekAt(l.pos) }

func (l *Lexer) peekByte(n int) byte {
	idx := l.pos + n
	if idx >= l.length() {
		return 0
	}
	return l.src[idx]
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.lineStart = l.pos
	}
	return r
}

// match consumes s if it is a prefix of the remaining input. Operators are
// always ASCII, so byte-length equals rune count and advancing byte-wise
// is safe.
func (l *Lexer) match(s string) bool {
	if !strings.HasPrefix(l.src[l.pos:], s) {
		return false
	}
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.advance()
		i += size
	}
	return true
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isAlpha(r rune) bool      { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isIdentChar(r rune) bool  { return isAlpha(r) || isDigit(r) || r == '_' }
func isNumberChar(r rune) bool { return isDigit(r) || r == '.' || r == '_' }

func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.pos
	for l.pos < l.length() && pred(l.peek()) {
		l.advance()
	}
	return l.src[start:l.pos]
}

// readString scans a single- or double-quoted string body, honoring the
// fixed escape set \n \t \r \\ \" \'; any other escaped character yields
// the literal character (lexer.py's read_string).
func (l *Lexer) readString(quote rune) string {
	var sb strings.Builder
	l.advance() // opening quote
	for l.pos < l.length() && l.peek() != quote {
		if l.peek() == '\\' {
			l.advance()
			if l.pos >= l.length() {
				break
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\':
				sb.WriteRune('\\')
			case '"':
				sb.WriteRune('"')
			case '\'':
				sb.WriteRune('\'')
			default:
				sb.WriteRune(esc)
			}
		} else {
			sb.WriteRune(l.advance())
		}
	}
	if l.pos < l.length() {
		l.advance() // closing quote
	}
	return sb.String()
}

// readTripleString scans a """...""" block. The newline immediately after
// the opener is swallowed and a single trailing newline is stripped.
func (l *Lexer) readTripleString() string {
	l.advance()
	l.advance()
	l.advance()
	if l.peek() == '\n' {
		l.advance()
	}
	var sb strings.Builder
	for l.pos < l.length() {
		if l.peek() == '"' && l.peekAt(l.pos+1) == '"' && l.peekAt(l.pos+2) == '"' {
			value := sb.String()
			value = strings.TrimSuffix(value, "\n")
			l.advance()
			l.advance()
			l.advance()
			return value
		}
		sb.WriteRune(l.advance())
	}
	return sb.String()
}

func (l *Lexer) readComment() string {
	start := l.pos
	l.advance() // '#'
	for l.pos < l.length() && l.peek() != '\n' {
		l.advance()
	}
	return l.src[start+1 : l.pos]
}

// Lex runs the full scan.
func (l *Lexer) Lex() ([]token.Token, error) {
	var toks []token.Token

	for l.pos < l.length() {
		// whitespace / newline
		for l.pos < l.length() {
			ch := l.peek()
			if ch == ' ' || ch == '\t' || ch == '\r' {
				l.advance()
				continue
			}
			if ch == '\n' {
				loc := l.locus()
				l.advance()
				toks = append(toks, token.Token{Tag: token.Newline, Lexeme: "\n", Locus: loc})
				continue
			}
			break
		}
		if l.pos >= l.length() {
			break
		}

		loc := l.locus()
		ch := l.peek()

		switch {
		case ch == '#':
			value := l.readComment()
			toks = append(toks, token.Token{Tag: token.Comment, Lexeme: value, Locus: loc})
			continue

		case ch == '"' && l.peekByte(1) == '"' && l.peekByte(2) == '"':
			value := l.readTripleString()
			toks = append(toks, token.Token{Tag: token.String, Lexeme: value, Locus: loc})
			continue

		case ch == '"' || ch == '\'':
			value := l.readString(ch)
			toks = append(toks, token.Token{Tag: token.String, Lexeme: value, Locus: loc})
			continue

		case isDigit(ch):
			value := l.readWhile(isNumberChar)
			toks = append(toks, token.Token{Tag: token.Number, Lexeme: value, Locus: loc})
			continue

		case isAlpha(ch) || ch == '_':
			value := l.readWhile(isIdentChar)
			tag := token.Identifier
			if token.Keywords[value] {
				tag = token.Keyword
			}
			toks = append(toks, token.Token{Tag: tag, Lexeme: value, Locus: loc})
			continue
		}

		matched := false
		for _, op := range token.Operators {
			if l.match(op) {
				toks = append(toks, token.Token{Tag: token.Operator, Lexeme: op, Locus: loc})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if ch == token.SectionSign {
			l.advance()
			toks = append(toks, token.Token{Tag: token.Punctuator, Lexeme: string(token.SectionSign), Locus: loc})
			continue
		}

		if ch < utf8.RuneSelf && strings.ContainsRune(token.Punctuators, ch) {
			l.advance()
			toks = append(toks, token.Token{Tag: token.Punctuator, Lexeme: string(ch), Locus: loc})
			continue
		}

		return nil, diag.New(loc, "unexpected character %s", describeRune(ch))
	}

	toks = append(toks, token.Token{Tag: token.EOF, Lexeme: "", Locus: l.locus()})
	return toks, nil
}

func describeRune(r rune) string {
	return fmt.Sprintf("'%c'", r)
}

// Prepare filters Comment and Newline tokens, the input the parser
// actually consumes (spec.md §8 filtering property).
func Prepare(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Tag == token.Comment || t.Tag == token.Newline {
			continue
		}
		out = append(out, t)
	}
	return out
}
