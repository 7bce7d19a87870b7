package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "noop"))

	base := errors.New("boom")
	err := Wrap(base, "load booking")
	assert.True(t, Is(err, base))
	assert.Contains(t, err.Error(), "load booking: boom")
}

func TestStackLines(t *testing.T) {
	err := New("boom")
	lines := StackLines(err, 3)
	assert.Len(t, lines, 3)
	assert.Equal(t, "boom", lines[0])
}
