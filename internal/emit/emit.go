// Package emit writes a script statement tree as source text.
//
// Indentation comes only from nesting depth. Output is a pure function of
// the tree and the configured indent unit.
package emit

import (
	"fmt"
	"strings"

	"github.com/eventpy/eventpy/internal/script"
)

// DefaultIndent is one tab per nesting level.
const DefaultIndent = "\t"

// Emitter renders statements.
type Emitter struct {
	indent string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithIndent sets the indent unit. An empty unit keeps the default.
func WithIndent(unit string) Option {
	return func(e *Emitter) {
		if unit != "" {
			e.indent = unit
		}
	}
}

// New creates an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{indent: DefaultIndent}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders stmts at depth zero.
func (e *Emitter) Emit(stmts []script.Stmt) string {
	var b strings.Builder
	w := &writer{b: &b, unit: e.indent}
	w.stmts(stmts, 0)
	return b.String()
}

type writer struct {
	b    *strings.Builder
	unit string
}

func (w *writer) pad(depth int) {
	for i := 0; i < depth; i++ {
		w.b.WriteString(w.unit)
	}
}

func (w *writer) line(depth int, s string) {
	w.pad(depth)
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

// block writes a nested body. Empty bodies get pass.
func (w *writer) block(body []script.Stmt, depth int) {
	if len(body) == 0 {
		w.line(depth, "pass")
		return
	}
	w.stmts(body, depth)
}

func (w *writer) stmts(stmts []script.Stmt, depth int) {
	for _, s := range stmts {
		w.stmt(s, depth)
	}
}

func (w *writer) stmt(s script.Stmt, depth int) {
	switch s := s.(type) {
	case script.ExprStmt:
		w.pad(depth)
		w.expr(s.X, depth)
		w.b.WriteByte('\n')

	case script.Assign:
		w.pad(depth)
		w.expr(s.Target, depth)
		w.b.WriteString(" " + s.Op + " ")
		w.expr(s.Value, depth)
		w.b.WriteByte('\n')

	case script.If:
		for i, br := range s.Branches {
			w.pad(depth)
			if i == 0 {
				w.b.WriteString("if ")
			} else {
				w.b.WriteString("elif ")
			}
			w.expr(br.Cond, depth)
			w.b.WriteByte(':')
			if br.Comment != "" {
				w.b.WriteString(" # " + commentText(br.Comment))
			}
			w.b.WriteByte('\n')
			w.block(br.Body, depth+1)
		}
		if s.HasElse {
			w.line(depth, "else:")
			w.block(s.Else, depth+1)
		}

	case script.While:
		w.pad(depth)
		w.b.WriteString("while ")
		w.expr(s.Cond, depth)
		w.b.WriteString(":\n")
		w.block(s.Body, depth+1)

	case script.Break:
		w.line(depth, "break")

	case script.Pass:
		w.line(depth, "pass")

	case script.Comment:
		w.comment(s.Text, depth)

	case script.Placeholder:
		w.comment(s.Text, depth)

	default:
		w.line(depth, fmt.Sprintf("# unsupported statement %T", s))
	}
}

func (w *writer) comment(text string, depth int) {
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if l == "" {
			w.line(depth, "#")
			continue
		}
		w.line(depth, "# "+l)
	}
}

// commentText keeps a trailing comment on one line.
func commentText(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// expr writes e. depth is the nesting level of the line e starts on;
// multiline literals indent their items one level deeper.
func (w *writer) expr(e script.Expr, depth int) {
	switch e := e.(type) {
	case script.Name:
		w.b.WriteString(string(e))
	case script.Int:
		fmt.Fprintf(w.b, "%d", int64(e))
	case script.Number:
		w.b.WriteString(string(e))
	case script.Bool:
		if e {
			w.b.WriteString("True")
		} else {
			w.b.WriteString("False")
		}
	case script.None:
		w.b.WriteString("None")
	case script.Str:
		w.b.WriteString(Quote(string(e)))

	case script.List:
		w.seq("[", "]", len(e.Items), e.Multiline, depth, func(i, d int) {
			w.expr(e.Items[i], d)
		})

	case script.Dict:
		w.seq("{", "}", len(e.Entries), e.Multiline, depth, func(i, d int) {
			w.expr(e.Entries[i].Key, d)
			w.b.WriteString(": ")
			w.expr(e.Entries[i].Value, d)
		})

	case script.Call:
		w.expr(e.Func, depth)
		w.seq("(", ")", len(e.Args), e.Multiline, depth, func(i, d int) {
			if e.Args[i].Name != "" {
				w.b.WriteString(e.Args[i].Name + "=")
			}
			w.expr(e.Args[i].Value, d)
		})

	case script.Attr:
		w.expr(e.X, depth)
		w.b.WriteString("." + e.Name)

	case script.Index:
		w.expr(e.X, depth)
		w.b.WriteByte('[')
		w.expr(e.Key, depth)
		w.b.WriteByte(']')

	case script.Binary:
		w.expr(e.L, depth)
		w.b.WriteString(" " + e.Op + " ")
		w.expr(e.R, depth)

	case script.Not:
		w.b.WriteString("not ")
		w.expr(e.X, depth)

	case script.Neg:
		w.b.WriteByte('-')
		w.expr(e.X, depth)

	default:
		fmt.Fprintf(w.b, "<unsupported %T>", e)
	}
}

// seq writes a bracketed sequence. Multiline sequences put each item on
// its own line followed by a comma.
func (w *writer) seq(open, close string, n int, multiline bool, depth int, item func(i, depth int)) {
	w.b.WriteString(open)
	if multiline && n > 0 {
		w.b.WriteByte('\n')
		for i := 0; i < n; i++ {
			w.pad(depth + 1)
			item(i, depth+1)
			w.b.WriteString(",\n")
		}
		w.pad(depth)
	} else {
		for i := 0; i < n; i++ {
			if i > 0 {
				w.b.WriteString(", ")
			}
			item(i, depth)
		}
	}
	w.b.WriteString(close)
}
