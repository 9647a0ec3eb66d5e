package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate("ses")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	id, err := Generate("ses")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "ses-"))

	// NanoID default is 21 characters after the prefix and hyphen.
	nanoidPart := strings.TrimPrefix(id, "ses-")
	assert.Len(t, nanoidPart, 21)

	// All characters should be URL-safe (A-Za-z0-9_-).
	for _, char := range nanoidPart {
		assert.True(t,
			(char >= 'A' && char <= 'Z') ||
				(char >= 'a' && char <= 'z') ||
				(char >= '0' && char <= '9') ||
				char == '_' || char == '-',
			"Character %c should be URL-safe", char)
	}
}

func TestMustGenerate_Format(t *testing.T) {
	id := MustGenerate("ses")

	assert.True(t, strings.HasPrefix(id, "ses-"))
	assert.Equal(t, len("ses")+1+21, len(id))
}
