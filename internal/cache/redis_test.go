package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIsStable(t *testing.T) {
	a := Key("openai", "gpt-4", "prompt")
	b := Key("openai", "gpt-4", "prompt")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "completion:"))
	assert.Len(t, a, len("completion:")+64)
}

func TestKeyDependsOnEveryPart(t *testing.T) {
	base := Key("openai", "gpt-4", "prompt")

	assert.NotEqual(t, base, Key("groq", "gpt-4", "prompt"))
	assert.NotEqual(t, base, Key("openai", "gpt-4o", "prompt"))
	assert.NotEqual(t, base, Key("openai", "gpt-4", "prompt "))
	// parts are separated, so shifting bytes between them changes the key
	assert.NotEqual(t, Key("ab", "c", "p"), Key("a", "bc", "p"))
}
