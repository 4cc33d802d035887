package compiler

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// LintError explains why an output is not a usable command file. It matches
// ErrInvalidCommand with errors.Is and unwraps to the TOML parse error, if any.
type LintError struct {
	Reason string
	Err    error
}

func (e *LintError) Error() string {
	return e.Reason
}

func (e *LintError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidCommand as a match.
func (e *LintError) Is(target error) bool {
	return target == ErrInvalidCommand
}

// Position returns the multi-line location report of a TOML parse failure,
// or "" when the document parsed.
func (e *LintError) Position() string {
	var perr toml.ParseError
	if errors.As(e.Err, &perr) {
		return perr.ErrorWithPosition()
	}
	return ""
}

// LintCommand checks that content is a TOML document with a string "prompt"
// key, which is what Gemini CLI expects of a custom command file.
func LintCommand(content string) error {
	var doc map[string]interface{}
	if _, err := toml.Decode(content, &doc); err != nil {
		return &LintError{Reason: err.Error(), Err: err}
	}

	prompt, ok := doc["prompt"]
	if !ok {
		return &LintError{Reason: `missing required key "prompt"`}
	}
	if _, ok := prompt.(string); !ok {
		return &LintError{Reason: `"prompt" must be a string`}
	}
	return nil
}
