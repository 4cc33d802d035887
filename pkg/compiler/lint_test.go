package compiler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCommand(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{name: "valid", content: "description = \"x\"\nprompt = \"\"\"\nDo it\n\"\"\"\n"},
		{name: "syntax error", content: "prompt = \"unterminated\n", reason: "toml:"},
		{name: "missing prompt", content: "description = \"x\"\n", reason: `missing required key "prompt"`},
		{name: "prompt not a string", content: "prompt = 3\n", reason: `"prompt" must be a string`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LintCommand(tt.content)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCommand))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestLintError_Position(t *testing.T) {
	err := LintCommand("a = 1\nprompt = \n")
	require.Error(t, err)

	var lintErr *LintError
	require.True(t, errors.As(err, &lintErr))
	assert.Contains(t, lintErr.Position(), "line 2")

	err = LintCommand("description = \"x\"\n")
	require.True(t, errors.As(err, &lintErr))
	assert.Empty(t, lintErr.Position())
}
