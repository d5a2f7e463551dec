// Package flow rebuilds nested blocks from a flat, indent-tagged command list.
package flow

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/pkg/core"
)

// Block is one command together with everything nested under it.
// Leaves have no arms and no closer.
type Block struct {
	Index   int
	Command core.RawCommand
	Entry   registry.Entry
	// Known is false when the registry has no entry for the code.
	Known bool
	// Extra holds continuation rows folded into this command.
	Extra []core.RawCommand
	// Body is the primary branch: the loop body, the "then" part, or
	// anything between Show Choices and its first When.
	Body []*Block
	// Arms are the split markers in source order.
	Arms        []*Arm
	Closer      *core.RawCommand
	CloserIndex int
}

// Arm is a branch opened by a split marker such as Else or When.
type Arm struct {
	Index   int
	Command core.RawCommand
	Entry   registry.Entry
	Body    []*Block
}

// Compound reports whether b was closed by a matching end marker.
func (b *Block) Compound() bool {
	return b.Closer != nil
}

// Arm returns the first arm of kind k, or nil.
func (b *Block) Arm(k registry.Kind) *Arm {
	for _, a := range b.Arms {
		if a.Entry.Kind == k {
			return a
		}
	}
	return nil
}

// Alternate returns the else branch of a conditional, or nil when absent.
func (b *Block) Alternate() *Arm {
	return b.Arm(registry.Else)
}

type frame struct {
	block  *Block
	indent int
	body   *[]*Block
}

// Reconstruct turns rows into a block tree in one pass. Any opener that is
// not closed at its own indent is a structural error; nothing is repaired.
// Rows of a body sit exactly one level under their opener, top-level rows at
// indent 0.
func Reconstruct(table *registry.Table, rows []core.RawCommand) ([]*Block, error) {
	var (
		root  []*Block
		stack []*frame
		last  *Block
	)

	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	target := func() *[]*Block {
		if f := top(); f != nil {
			return f.body
		}
		return &root
	}
	fail := func(i int, row core.RawCommand, format string, args ...any) error {
		return diag.At(i, row.Code, fmt.Errorf("%w: "+format, append([]any{diag.ErrStructural}, args...)...))
	}

	for i, row := range rows {
		if row.Indent < 0 {
			return nil, fail(i, row, "negative indent %d", row.Indent)
		}
		entry, known := table.Lookup(row.Code)

		if f := top(); f != nil {
			if row.Indent < f.indent {
				return nil, fail(i, row, "indent %d drops below %s opened at command %d (indent %d)",
					row.Indent, f.block.Entry.Family, f.block.Index, f.indent)
			}
			if row.Indent == f.indent && !(known && isMarker(entry) && entry.Family == f.block.Entry.Family) {
				return nil, fail(i, row, "expected end of %s opened at command %d, got code %d at indent %d",
					f.block.Entry.Family, f.block.Index, row.Code, row.Indent)
			}
			if row.Indent > f.indent+1 {
				return nil, fail(i, row, "indent %d skips levels inside %s opened at command %d (indent %d)",
					row.Indent, f.block.Entry.Family, f.block.Index, f.indent)
			}
		} else if row.Indent != 0 {
			return nil, fail(i, row, "top-level command at indent %d", row.Indent)
		}

		if !known {
			b := &Block{Index: i, Command: row}
			*target() = append(*target(), b)
			last = nil
			continue
		}

		switch entry.Role {
		case registry.RoleContinuation:
			if last == nil || last.Entry.Kind != entry.Continues || last.Command.Indent != row.Indent {
				return nil, fail(i, row, "%s row does not follow a %s command", entry.Kind, entry.Continues)
			}
			last.Extra = append(last.Extra, row)

		case registry.RoleLeaf:
			b := &Block{Index: i, Command: row, Entry: entry, Known: true}
			*target() = append(*target(), b)
			last = b

		case registry.RoleOpen:
			b := &Block{Index: i, Command: row, Entry: entry, Known: true}
			*target() = append(*target(), b)
			stack = append(stack, &frame{block: b, indent: row.Indent, body: &b.Body})
			last = nil

		case registry.RoleArm:
			f := top()
			if f == nil || f.indent != row.Indent || f.block.Entry.Family != entry.Family {
				if !promotable(last, entry, row) {
					return nil, fail(i, row, "%s outside of any %s", entry.Kind, entry.Family)
				}
				f = &frame{block: last, indent: row.Indent}
				stack = append(stack, f)
			}
			if entry.Once && f.block.Arm(entry.Kind) != nil {
				return nil, fail(i, row, "second %s in %s opened at command %d",
					entry.Kind, entry.Family, f.block.Index)
			}
			a := &Arm{Index: i, Command: row, Entry: entry}
			f.block.Arms = append(f.block.Arms, a)
			f.body = &a.Body
			last = nil

		case registry.RoleClose:
			f := top()
			if f == nil || f.indent != row.Indent || f.block.Entry.Family != entry.Family {
				return nil, fail(i, row, "%s without an open %s", entry.Kind, entry.Family)
			}
			closer := row
			f.block.Closer = &closer
			f.block.CloserIndex = i
			stack = stack[:len(stack)-1]
			last = nil
		}
	}

	if f := top(); f != nil {
		return nil, diag.At(f.block.Index, f.block.Command.Code,
			fmt.Errorf("%w: command list ends inside %s opened at indent %d", diag.ErrStructural, f.block.Entry.Family, f.indent))
	}

	return root, nil
}

func isMarker(e registry.Entry) bool {
	return e.Role == registry.RoleArm || e.Role == registry.RoleClose
}

// promotable reports whether a leaf header such as Battle Processing is
// immediately followed by its first result branch.
func promotable(last *Block, entry registry.Entry, row core.RawCommand) bool {
	return last != nil &&
		last.Entry.Role == registry.RoleLeaf &&
		last.Entry.Family == entry.Family &&
		entry.Family != registry.FamilyNone &&
		last.Command.Indent == row.Indent &&
		len(last.Arms) == 0
}
