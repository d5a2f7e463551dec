// Package script is the statement tree produced by the translators and
// consumed by the emitter. It knows nothing about text layout.
package script

// Stmt is one statement.
type Stmt interface {
	stmt()
}

// Expr is one expression.
type Expr interface {
	expr()
}

// Name is a bare identifier or dotted path such as game_party.gold.
type Name string

// Int is an integer literal.
type Int int64

// Number is a numeric literal kept in its source spelling.
type Number string

// Bool is True or False.
type Bool bool

// None is the null literal.
type None struct{}

// Str is a string literal. The emitter quotes it.
type Str string

// List is a list literal. Multiline lists put one item per line.
type List struct {
	Items     []Expr
	Multiline bool
}

// DictEntry is one key/value pair of a Dict.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// Dict is a dict literal. Entries keep their given order.
type Dict struct {
	Entries   []DictEntry
	Multiline bool
}

// Arg is a call argument. Name is empty for positional arguments.
type Arg struct {
	Name  string
	Value Expr
}

// Call is a function or method call.
type Call struct {
	Func      Expr
	Args      []Arg
	Multiline bool
}

// Attr is X.Name.
type Attr struct {
	X    Expr
	Name string
}

// Index is X[Key].
type Index struct {
	X   Expr
	Key Expr
}

// Binary is L Op R.
type Binary struct {
	Op string
	L  Expr
	R  Expr
}

// Not negates X.
type Not struct {
	X Expr
}

// Neg is unary minus.
type Neg struct {
	X Expr
}

func (Name) expr()   {}
func (Int) expr()    {}
func (Number) expr() {}
func (Bool) expr()   {}
func (None) expr()   {}
func (Str) expr()    {}
func (List) expr()   {}
func (Dict) expr()   {}
func (Call) expr()   {}
func (Attr) expr()   {}
func (Index) expr()  {}
func (Binary) expr() {}
func (Not) expr()    {}
func (Neg) expr()    {}

// ExprStmt evaluates an expression, usually a call.
type ExprStmt struct {
	X Expr
}

// Assign is Target Op Value, where Op is "=" or an augmented operator.
type Assign struct {
	Target Expr
	Op     string
	Value  Expr
}

// Branch is one if or elif arm.
type Branch struct {
	Cond Expr
	// Comment is written after the colon.
	Comment string
	Body    []Stmt
}

// If is an if/elif chain with an optional else.
type If struct {
	Branches []Branch
	HasElse  bool
	Else     []Stmt
}

// While is a loop.
type While struct {
	Cond Expr
	Body []Stmt
}

// Break leaves the innermost loop.
type Break struct{}

// Pass is an explicit empty statement.
type Pass struct{}

// Comment is a line comment. Text containing newlines spans several lines.
type Comment struct {
	Text string
}

// Placeholder stands in for a command that could not be translated.
type Placeholder struct {
	Code int
	Text string
}

func (ExprStmt) stmt()    {}
func (Assign) stmt()      {}
func (If) stmt()          {}
func (While) stmt()       {}
func (Break) stmt()       {}
func (Pass) stmt()        {}
func (Comment) stmt()     {}
func (Placeholder) stmt() {}

// Kw builds a keyword argument.
func Kw(name string, v Expr) Arg {
	return Arg{Name: name, Value: v}
}

// Pos builds a positional argument.
func Pos(v Expr) Arg {
	return Arg{Value: v}
}

// CallOf builds a single line call of a named function.
func CallOf(fn string, args ...Arg) Call {
	return Call{Func: Name(fn), Args: args}
}

// MultilineCall builds a call that puts every argument on its own line.
func MultilineCall(fn string, args ...Arg) Call {
	return Call{Func: Name(fn), Args: args, Multiline: true}
}

// Do wraps a call as a statement.
func Do(c Call) Stmt {
	return ExprStmt{X: c}
}

// Placeholders returns every placeholder in stmts in source order.
func Placeholders(stmts []Stmt) []Placeholder {
	var out []Placeholder
	for _, s := range stmts {
		switch s := s.(type) {
		case Placeholder:
			out = append(out, s)
		case If:
			for _, b := range s.Branches {
				out = append(out, Placeholders(b.Body)...)
			}
			out = append(out, Placeholders(s.Else)...)
		case While:
			out = append(out, Placeholders(s.Body)...)
		}
	}
	return out
}
