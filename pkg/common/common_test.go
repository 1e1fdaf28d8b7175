package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talkincode/qkart/pkg/common"
)

func TestUUIDint64(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := common.UUIDint64()
		assert.Greater(t, id, int64(0))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsEmailValid(t *testing.T) {
	assert.True(t, common.IsEmailValid("crio-user@gmail.com"))
	assert.True(t, common.IsEmailValid("a@b.co"))
	assert.False(t, common.IsEmailValid("not-an-email"))
	assert.False(t, common.IsEmailValid("missing@domain"))
	assert.False(t, common.IsEmailValid(""))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, common.IsStrongPassword("learnbydoing1"))
	assert.True(t, common.IsStrongPassword("1a"))
	assert.False(t, common.IsStrongPassword("lettersonly"))
	assert.False(t, common.IsStrongPassword("12345678"))
	assert.False(t, common.IsStrongPassword(""))
}
