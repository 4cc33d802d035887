package compiler

// Reporter receives operator-facing progress lines. presenter.TerminalPresenter
// satisfies it.
type Reporter interface {
	Processing(name string)
	Success(message string)
	Warning(message string)
	Failure(message string)
	Removed(path string)
	Info(message string)
}

type nopReporter struct{}

func (nopReporter) Processing(string) {}
func (nopReporter) Success(string)    {}
func (nopReporter) Warning(string)    {}
func (nopReporter) Failure(string)    {}
func (nopReporter) Removed(string)    {}
func (nopReporter) Info(string)       {}
