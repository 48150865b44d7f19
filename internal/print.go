package internal

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/contains"
)

// printer renders values. It tracks the atoms currently being printed so
// that an atom which contains itself terminates. Only an atom already in seen
// can be open.
type printer struct {
	b        strings.Builder
	readable bool
	open     []uintptr
	seen     contains.Set
}

// Print renders v as text. When readable is true, strings are quoted and
// escaped so that Read can recover them.
func Print(v Value, readable bool) string {
	p := printer{readable: readable}
	p.print(v)
	return p.b.String()
}

// PrintSeq renders each value in vs and joins them with sep.
func PrintSeq(vs []Value, readable bool, sep string) string {
	p := printer{readable: readable}
	for i, v := range vs {
		if i > 0 {
			p.b.WriteString(sep)
		}
		p.print(v)
	}
	return p.b.String()
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func (p *printer) print(v Value) {
	switch v := v.(type) {
	case List:
		p.seq("(", v, ")")
	case Vector:
		p.seq("[", v, "]")
	case Map:
		p.seq("{", v, "}")
	case Number:
		p.b.WriteString(strconv.FormatInt(int64(v), 10))
	case String:
		if p.readable {
			p.b.WriteByte('"')
			escaper.WriteString(&p.b, string(v))
			p.b.WriteByte('"')
		} else {
			p.b.WriteString(string(v))
		}
	case Symbol:
		p.b.WriteString(string(v))
	case Bool:
		p.b.WriteString(strconv.FormatBool(bool(v)))
	case NilValue, nil:
		p.b.WriteString("nil")
	case *Closure, *Builtin:
		p.b.WriteString("#<function>")
	case *Atom:
		p.atom(v)
	case Quote:
		p.wrapped("quote", v.Value)
	case Quasiquote:
		p.wrapped("quasiquote", v.Value)
	case Unquote:
		p.wrapped("unquote", v.Value)
	case SpliceUnquote:
		p.wrapped("splice-unquote", v.Value)
	case WithMeta:
		p.b.WriteString("(with-meta ")
		p.print(v.Value)
		p.b.WriteByte(' ')
		p.print(v.Meta)
		p.b.WriteByte(')')
	}
}

func (p *printer) seq(open string, vs []Value, close string) {
	p.b.WriteString(open)
	for i, v := range vs {
		if i > 0 {
			p.b.WriteByte(' ')
		}
		p.print(v)
	}
	p.b.WriteString(close)
}

func (p *printer) wrapped(name string, v Value) {
	p.b.WriteByte('(')
	p.b.WriteString(name)
	p.b.WriteByte(' ')
	p.print(v)
	p.b.WriteByte(')')
}

// atom prints (atom x), where x is always printed readably.
func (p *printer) atom(a *Atom) {
	id := a.UniqueID()
	if !p.seen.Add(id) {
		for _, o := range p.open {
			if o == id {
				p.b.WriteString("(atom ...)")
				return
			}
		}
	}
	p.open = append(p.open, id)
	readable := p.readable
	p.readable = true
	p.b.WriteString("(atom ")
	p.print(a.Value)
	p.b.WriteByte(')')
	p.readable = readable
	p.open = p.open[:len(p.open)-1]
}
