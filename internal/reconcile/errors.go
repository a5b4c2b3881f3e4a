package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingInput means one of the three workbooks has not been supplied yet.
	ErrMissingInput = errors.New("missing input")

	// ErrMalformedInput means a table could not be parsed or lacks a required column.
	ErrMalformedInput = errors.New("malformed input")

	// ErrAmbiguousJoin means the EP List holds the same (Component_ID, Symbol) key more than once.
	ErrAmbiguousJoin = errors.New("ambiguous join")
)

// MissingInputError lists the inputs that still need to be supplied.
type MissingInputError struct {
	Inputs []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input: %s", strings.Join(e.Inputs, ", "))
}

func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// MalformedInputError describes a table that cannot be reconciled.
type MalformedInputError struct {
	Table   string
	Column  string
	Message string
	Err     error
}

func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString("malformed input")
	if e.Table != "" {
		fmt.Fprintf(&b, " in %s", e.Table)
	}
	switch {
	case e.Message != "":
		fmt.Fprintf(&b, ": %s", e.Message)
	case e.Column != "":
		fmt.Fprintf(&b, ": required column %q not found", e.Column)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// AmbiguousJoinError reports the first duplicated EP List key.
type AmbiguousJoinError struct {
	Key       Key
	FirstRow  int
	SecondRow int
}

func (e *AmbiguousJoinError) Error() string {
	return fmt.Sprintf("ambiguous join: EP List key (Component_ID=%q, Symbol=%q) appears in rows %d and %d",
		e.Key.ComponentID, e.Key.Symbol, e.FirstRow, e.SecondRow)
}

func (e *AmbiguousJoinError) Is(target error) bool {
	return target == ErrAmbiguousJoin
}

// UserMessage renders any reconciliation failure as the single line shown to end users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	return "⚠️ Error: " + msg
}
