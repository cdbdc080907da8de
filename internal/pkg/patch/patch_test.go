//go:build unit

package patch_test

import (
	"testing"

	"turnos-service/internal/pkg/patch"
	"turnos-service/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, patch.Coalesce(nil, 5))
	assert.Equal(t, 7, patch.Coalesce(ptr.Of(7), 5))
	assert.Equal(t, false, patch.Coalesce(ptr.Of(false), true))
}
