package compiler

import (
	"github.com/hashicorp/go-multierror"
)

// Result summarizes one run.
type Result struct {
	// Skipped is set when the template directory does not exist; nothing else
	// happened in that case.
	Skipped   bool
	Compiled  []string
	Failed    []string
	Generated []string
	Removed   []string

	problems *multierror.Error
}

func (r *Result) addProblem(err error) {
	r.problems = multierror.Append(r.problems, err)
}

// Problems returns every non-fatal issue recorded during the run.
func (r *Result) Problems() []error {
	if r.problems == nil {
		return nil
	}
	return r.problems.Errors
}

// Err returns the recorded problems as a single error, or nil when there were
// none.
func (r *Result) Err() error {
	return r.problems.ErrorOrNil()
}
