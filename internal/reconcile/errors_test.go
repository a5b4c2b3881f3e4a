package reconcile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	missing := &MissingInputError{Inputs: []string{TablePart2}}
	assert.True(t, errors.Is(missing, ErrMissingInput))
	assert.False(t, errors.Is(missing, ErrMalformedInput))
	assert.Equal(t, "missing input: Part 2", missing.Error())

	cause := errors.New("zip: not a valid zip file")
	malformed := &MalformedInputError{Table: TableEPList, Err: cause}
	assert.True(t, errors.Is(malformed, ErrMalformedInput))
	assert.True(t, errors.Is(malformed, cause))
	assert.Equal(t, "malformed input in EP List: zip: not a valid zip file", malformed.Error())

	column := &MalformedInputError{Table: TablePart1, Column: ColC}
	assert.Equal(t, `malformed input in Part 1: required column "C" not found`, column.Error())

	ambiguous := fmt.Errorf("reconcile: %w", &AmbiguousJoinError{Key: Key{"A1", "X"}, FirstRow: 2, SecondRow: 5})
	assert.True(t, errors.Is(ambiguous, ErrAmbiguousJoin))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "⚠️ Error: bad things", UserMessage(errors.New("bad\nthings")))
	assert.Equal(t, `⚠️ Error: malformed input in Part 1: required column "Symbol" not found`,
		UserMessage(&MalformedInputError{Table: TablePart1, Column: ColSymbol}))
}
