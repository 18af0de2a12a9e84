package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	t.Run("长 ID 截取前八位", func(t *testing.T) {
		assert.Equal(t, "a1b2c3d4", shortID("a1b2c3d4-e5f6-7890"))
	})

	t.Run("短 ID 原样返回", func(t *testing.T) {
		assert.Equal(t, "42", shortID("42"))
		assert.Equal(t, "", shortID(""))
	})
}
