package internal

/*
This file converts lexer tokens into values. The reader macros ', `, ~, ~@,
and ^ produce wrapper values which the evaluator eliminates; @x becomes the
list (deref x) directly.
*/

import (
	"fmt"
	"io"
	"strings"
)

// reader is a cursor over a token sequence.
type reader struct {
	tokens []token
	pos    int
}

// Read reads the first form in text. Any text following the first form is
// ignored. If text contains no forms, the error wraps ErrNoForm. All errors
// are *SyntaxError.
func Read(text string) (Value, error) {
	r := &reader{tokens: lex(strings.NewReader(text))}
	if len(r.tokens) == 0 {
		return nil, &SyntaxError{Err: ErrNoForm}
	}
	return r.form()
}

// ReadAll reads every form in text.
func ReadAll(text string) ([]Value, error) {
	r := &reader{tokens: lex(strings.NewReader(text))}
	var forms []Value
	for r.pos < len(r.tokens) {
		v, err := r.form()
		if err != nil {
			return forms, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

// next consumes a token. ok is false at the end of input.
func (r *reader) next() (tok token, ok bool) {
	if r.pos >= len(r.tokens) {
		return token{}, false
	}
	tok = r.tokens[r.pos]
	r.pos++
	return tok, true
}

// eof creates the error for running out of tokens while a form is required.
func (r *reader) eof(msg string) error {
	err := &SyntaxError{Msg: msg, Err: io.ErrUnexpectedEOF}
	if len(r.tokens) > 0 {
		last := r.tokens[len(r.tokens)-1]
		err.Line, err.Col = last.Line, last.Col
	}
	return err
}

// form reads one complete form.
func (r *reader) form() (Value, error) {
	tok, ok := r.next()
	if !ok {
		return nil, r.eof("expected form, got EOF")
	}
	switch tok.Kind {
	case badToken:
		return nil, &SyntaxError{Line: tok.Line, Col: tok.Col, Err: tok.Err}
	case openToken:
		return r.seq(tok)
	case closeToken:
		return nil, &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf("unexpected '%s'", tok.Value)}
	case macroToken:
		return r.macro(tok)
	case numberToken:
		return Number(tok.Num), nil
	case stringToken:
		return String(tok.Value), nil
	}
	switch tok.Value {
	case "true":
		return True, nil
	case "false":
		return False, nil
	case "nil":
		return Nil, nil
	}
	return Symbol(tok.Value), nil
}

// closers maps each open bracket to its close bracket.
var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// seq reads the elements of a collection up to its matching close bracket.
func (r *reader) seq(open token) (Value, error) {
	want := closers[open.Value]
	var items []Value
	for {
		if r.pos >= len(r.tokens) {
			return nil, r.eof(fmt.Sprintf("expected '%s', got EOF", want))
		}
		if tok := r.tokens[r.pos]; tok.Kind == closeToken {
			r.pos++
			if tok.Value != want {
				return nil, &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf("expected '%s', got '%s'", want, tok.Value)}
			}
			break
		}
		v, err := r.form()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	switch open.Value {
	case "[":
		return Vector(items), nil
	case "{":
		m, err := NewMap(items...)
		if err != nil {
			return nil, &SyntaxError{Line: open.Line, Col: open.Col, Msg: err.Error()}
		}
		return m, nil
	}
	return List(items), nil
}

// macro reads the form or forms following a reader macro.
func (r *reader) macro(tok token) (Value, error) {
	v, err := r.operand(tok)
	if err != nil {
		return nil, err
	}
	switch tok.Value {
	case "'":
		return Quote{v}, nil
	case "`":
		return Quasiquote{v}, nil
	case "~":
		return Unquote{v}, nil
	case "~@":
		return SpliceUnquote{v}, nil
	case "@":
		return List{Symbol("deref"), v}, nil
	}
	// ^meta value
	w, err := r.operand(tok)
	if err != nil {
		return nil, err
	}
	return WithMeta{Value: w, Meta: v}, nil
}

// operand reads a form required by a reader macro.
func (r *reader) operand(tok token) (Value, error) {
	if r.pos >= len(r.tokens) {
		return nil, r.eof(fmt.Sprintf("expected form after '%s', got EOF", tok.Value))
	}
	return r.form()
}
