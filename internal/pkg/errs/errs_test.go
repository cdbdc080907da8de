//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"turnos-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	category := errs.New("category")
	cause := errors.New("cause")

	marked := errs.Mark(cause, category)

	assert.True(t, errs.Is(marked, category))
	assert.True(t, errs.Is(marked, cause))
	assert.Equal(t, category, errs.Mark(nil, category))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ctx"))

	base := errors.New("boom")
	wrapped := errs.Wrapf(base, "calling %s", "upstream")
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "calling upstream: boom")
	assert.NotEmpty(t, errs.ExtractStackLines(wrapped, 3))
	assert.LessOrEqual(t, len(errs.ExtractStackLines(wrapped, 3)), 3)
}
