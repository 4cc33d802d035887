package compiler

import "github.com/pkg/errors"

// Problems recorded during a run. None of them stop the run; they are
// collected in Result and surface through Result.Err.
var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrMissingInclude    = errors.New("referenced file not found")
	ErrUnreadableInclude = errors.New("referenced file could not be read")
	ErrInvalidCommand    = errors.New("invalid command file")
)
