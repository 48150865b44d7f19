package internal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A token is a single lexical element.
type token struct {
	Kind  tokenKind
	Value string
	Num   int64
	Err   error

	Line, Col int
}

type tokenKind int

const (
	badToken tokenKind = iota

	openToken   // open bracket: (, [, {
	closeToken  // close bracket: ), ], }
	macroToken  // reader macro: ', `, ~, ~@, ^, @
	numberToken // decimal integer, possibly negative
	stringToken // "string", Value holds the unescaped text
	symbolToken // everything else
)

// separators end a symbol or number.
const separators = " \t\r\n\f\v,()[]{}'\"`;"

func isSeparator(r rune) bool {
	return strings.ContainsRune(separators, r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// lexer holds the state of a scan over source text.
type lexer struct {
	src    *bufio.Reader
	tokens []token

	line, col int
	// pline and pcol are the position before the last rune read, so that
	// unread can restore them.
	pline, pcol int
}

// lexFn is a lexer state function. Each lexFn lexes a token, appends it to
// the lexer's tokens, and returns the next lexFn to use.
type lexFn func(l *lexer) lexFn

// lex converts a source into a sequence of tokens. Lexing stops after the
// first badToken.
func lex(src io.Reader) []token {
	l := &lexer{src: bufio.NewReader(src), line: 1, col: 1}
	for state := lexFn(eatSpace); state != nil; {
		state = state(l)
	}
	return l.tokens
}

// read reads one rune and advances the position.
func (l *lexer) read() (rune, error) {
	r, _, err := l.src.ReadRune()
	if err != nil {
		return r, err
	}
	l.pline, l.pcol = l.line, l.col
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, nil
}

// unread unreads the last rune read. It may only be called once after each
// successful read.
func (l *lexer) unread() {
	l.src.UnreadRune()
	l.line, l.col = l.pline, l.pcol
}

// peek returns the next rune without consuming it. ok is false at the end of
// input.
func (l *lexer) peek() (r rune, ok bool) {
	r, _, err := l.src.ReadRune()
	if err != nil {
		return 0, false
	}
	l.src.UnreadRune()
	return r, true
}

// accept appends the next run of runes which satisfy the predicate to b.
// Returns b after appending and any error other than io.EOF. The first rune
// which does not satisfy the predicate is unread.
func (l *lexer) accept(predicate func(rune) bool, b []byte) ([]byte, error) {
	for {
		r, err := l.read()
		if err != nil {
			if err == io.EOF {
				return b, nil
			}
			return b, err
		}
		if !predicate(r) {
			l.unread()
			return b, nil
		}
		b = append(b, string(r)...)
	}
}

// emit appends a token and returns eatSpace, or nil if the token is bad.
func (l *lexer) emit(tok token) lexFn {
	l.tokens = append(l.tokens, tok)
	if tok.Kind == badToken {
		return nil
	}
	return eatSpace
}

// eatSpace consumes whitespace, commas, and comments, then decides the next
// lexFn to use.
func eatSpace(l *lexer) lexFn {
	for {
		r, err := l.read()
		if err != nil {
			if err != io.EOF {
				return l.emit(token{Kind: badToken, Err: err, Line: l.line, Col: l.col})
			}
			return nil
		}
		switch {
		case strings.ContainsRune(" \t\r\n\f\v,", r):
			continue
		case r == ';':
			l.accept(func(r rune) bool { return r != '\n' }, nil)
			continue
		}
		line, col := l.pline, l.pcol
		switch {
		case strings.ContainsRune("([{", r):
			return l.emit(token{Kind: openToken, Value: string(r), Line: line, Col: col})
		case strings.ContainsRune(")]}", r):
			return l.emit(token{Kind: closeToken, Value: string(r), Line: line, Col: col})
		case r == '~':
			if p, ok := l.peek(); ok && p == '@' {
				l.read()
				return l.emit(token{Kind: macroToken, Value: "~@", Line: line, Col: col})
			}
			return l.emit(token{Kind: macroToken, Value: "~", Line: line, Col: col})
		case strings.ContainsRune("'`^@", r):
			return l.emit(token{Kind: macroToken, Value: string(r), Line: line, Col: col})
		case r == '"':
			return lexString(l, line, col)
		case isDigit(r):
			return lexNumber(l, []byte(string(r)), line, col)
		case r == '-':
			// A minus followed by a digit is a negative number. Otherwise it
			// is either the start of a symbol or the symbol - by itself.
			if p, ok := l.peek(); ok && isDigit(p) {
				return lexNumber(l, []byte{'-'}, line, col)
			}
		}
		return lexSymbol(l, []byte(string(r)), line, col)
	}
}

// lexSymbol lexes a symbol, which runs until a separator. b holds the runes
// already consumed.
func lexSymbol(l *lexer, b []byte, line, col int) lexFn {
	b, err := l.accept(func(r rune) bool { return !isSeparator(r) }, b)
	if err != nil {
		return l.emit(token{Kind: badToken, Value: string(b), Err: err, Line: line, Col: col})
	}
	return l.emit(token{Kind: symbolToken, Value: string(b), Line: line, Col: col})
}

// lexNumber lexes a decimal integer. b holds the runes already consumed,
// either a minus sign or the first digit. Digits followed by anything other
// than a separator form a symbol, like 1abc.
func lexNumber(l *lexer, b []byte, line, col int) lexFn {
	b, err := l.accept(isDigit, b)
	if err != nil {
		return l.emit(token{Kind: badToken, Value: string(b), Err: err, Line: line, Col: col})
	}
	if p, ok := l.peek(); ok && !isSeparator(p) {
		return lexSymbol(l, b, line, col)
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return l.emit(token{Kind: badToken, Value: string(b), Err: fmt.Errorf("numeric literal %s out of range", b), Line: line, Col: col})
	}
	return l.emit(token{Kind: numberToken, Value: string(b), Num: n, Line: line, Col: col})
}

// lexString lexes a string whose opening quote has already been consumed. The
// token's value is the text with escapes resolved.
func lexString(l *lexer, line, col int) lexFn {
	var b strings.Builder
	escaped := false
	for {
		r, err := l.read()
		if err != nil {
			if err == io.EOF {
				err = fmt.Errorf("unterminated string: %w", io.ErrUnexpectedEOF)
			}
			return l.emit(token{Kind: badToken, Value: b.String(), Err: err, Line: line, Col: col})
		}
		switch {
		case escaped:
			escaped = false
			if r == 'n' {
				r = '\n'
			}
			b.WriteRune(r)
		case r == '\\':
			escaped = true
		case r == '"':
			return l.emit(token{Kind: stringToken, Value: b.String(), Line: line, Col: col})
		default:
			b.WriteRune(r)
		}
	}
}
