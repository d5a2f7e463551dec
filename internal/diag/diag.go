// Package diag holds the error taxonomy shared by every stage of the
// pipeline and the Diagnostic record handed back to callers.
package diag

import (
	"errors"
	"fmt"
)

// Sentinel errors. Stage-specific errors wrap one of these with %w.
var (
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrUnrecognizedCode = errors.New("unrecognized command code")
	ErrStructural       = errors.New("structural error")
	ErrData             = errors.New("data error")
)

// Kind classifies an error for reporting.
type Kind int

const (
	KindUnknown Kind = iota
	KindSchemaMismatch
	KindUnrecognizedCode
	KindStructural
	KindData
	KindTranslation
)

var kindNames = map[Kind]string{
	KindUnknown:          "Unknown",
	KindSchemaMismatch:   "SchemaMismatch",
	KindUnrecognizedCode: "UnrecognizedCode",
	KindStructural:       "StructuralError",
	KindData:             "DataError",
	KindTranslation:      "TranslationError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the most specific kind found in err's chain.
// A TranslationError without a recognised cause is KindTranslation.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrSchemaMismatch):
		return KindSchemaMismatch
	case errors.Is(err, ErrUnrecognizedCode):
		return KindUnrecognizedCode
	case errors.Is(err, ErrStructural):
		return KindStructural
	case errors.Is(err, ErrData):
		return KindData
	}
	var te *TranslationError
	if errors.As(err, &te) {
		return KindTranslation
	}
	return KindUnknown
}

// TranslationError tags a failure with the event and command it came from.
type TranslationError struct {
	EventID int
	Index   int
	Code    int
	Err     error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("event %d, command %d (code %d): %v", e.EventID, e.Index, e.Code, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// Wrap attaches event and command position to err. Errors that already
// carry a position are returned unchanged.
func Wrap(eventID, index, code int, err error) error {
	if err == nil {
		return nil
	}
	var te *TranslationError
	if errors.As(err, &te) {
		return err
	}
	return &TranslationError{EventID: eventID, Index: index, Code: code, Err: err}
}

// Diagnostic is one reported problem. Index is -1 when the problem is not
// tied to a single command.
type Diagnostic struct {
	EventID      int
	Page         int
	CommandIndex int
	Code         int
	Kind         Kind
	Message      string
}

// FromError builds a Diagnostic from err, pulling position data out of a
// TranslationError when one is present.
func FromError(eventID, page int, err error) Diagnostic {
	d := Diagnostic{
		EventID:      eventID,
		Page:         page,
		CommandIndex: -1,
		Kind:         KindOf(err),
		Message:      err.Error(),
	}
	var te *TranslationError
	if errors.As(err, &te) {
		d.CommandIndex = te.Index
		d.Code = te.Code
		d.Message = te.Err.Error()
	}
	var se *PositionError
	if errors.As(err, &se) && d.CommandIndex < 0 {
		d.CommandIndex = se.Index
		d.Code = se.Code
	}
	return d
}

// PositionError is raised by stages that know the offending row but not the
// event, such as control-flow reconstruction.
type PositionError struct {
	Index int
	Code  int
	Err   error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("command %d (code %d): %v", e.Index, e.Code, e.Err)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// At wraps err with a row position.
func At(index, code int, err error) error {
	return &PositionError{Index: index, Code: code, Err: err}
}
