package clierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesWrappedCause(t *testing.T) {
	err := Wrap(ExitRuntime, "running hook", errors.New("exit status 1"))
	assert.Equal(t, "running hook: exit status 1", err.Error())
}

func TestNewHasNoCause(t *testing.T) {
	err := New(ExitUsage, "unknown flag --bogus")
	assert.Equal(t, "unknown flag --bogus", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestUnwrapExposesUnderlyingErrorForErrorsIs(t *testing.T) {
	sentinel := errors.New("not found")
	err := Wrap(ExitNotFound, "resolving branch", sentinel)
	assert.True(t, errors.Is(err, sentinel))
}
