package compiler

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jingkaihe/gemc/pkg/logger"
	"github.com/pkg/errors"
)

// includePattern matches @{path}. The reference cannot contain '}'.
var includePattern = regexp.MustCompile(`@\{([^}]+)\}`)

// Expander splices referenced file contents into template text.
type Expander struct {
	projectRoot string
	reporter    Reporter
}

// NewExpander creates an Expander resolving relative references against
// projectRoot. A nil reporter discards progress lines.
func NewExpander(projectRoot string, reporter Reporter) *Expander {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Expander{projectRoot: projectRoot, reporter: reporter}
}

// Expand replaces every include directive in content, left to right, with the
// contents of the file it references. A missing file becomes
// "[MISSING: <ref>]" and an unreadable one "[ERROR reading <ref>]"; each such
// substitution is also returned as a problem. Inserted text is not rescanned.
func (e *Expander) Expand(ctx context.Context, content string) (string, []error) {
	matches := includePattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var (
		b        strings.Builder
		problems []error
		last     int
	)
	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		ref := strings.TrimSpace(content[m[2]:m[3]])
		replacement, err := e.include(ctx, ref)
		if err != nil {
			problems = append(problems, err)
		}
		b.WriteString(replacement)
		last = m[1]
	}
	b.WriteString(content[last:])

	return b.String(), problems
}

func (e *Expander) include(ctx context.Context, ref string) (string, error) {
	path := ResolvePath(e.projectRoot, ref)
	log := logger.G(ctx).WithField("ref", ref).WithField("path", path)

	if _, err := os.Stat(path); err != nil {
		e.reporter.Warning(fmt.Sprintf("Referenced file not found: %s", path))
		log.WithError(err).Debug("include target missing")
		return fmt.Sprintf("[MISSING: %s]", ref), errors.Wrap(ErrMissingInclude, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		e.reporter.Failure(fmt.Sprintf("Error reading %s: %v", path, err))
		log.WithError(err).Debug("include target unreadable")
		return fmt.Sprintf("[ERROR reading %s]", ref), errors.Wrapf(ErrUnreadableInclude, "%s (%v)", path, err)
	}

	log.WithField("bytes", len(data)).Debug("included file")
	return string(data), nil
}
