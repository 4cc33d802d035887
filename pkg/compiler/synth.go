package compiler

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jingkaihe/gemc/pkg/skills"
	"github.com/pkg/errors"
)

type commandHeader struct {
	Description string `toml:"description"`
}

// SkillReference returns the include reference used for a skill's SKILL.md:
// relative to projectRoot with forward slashes when the file lives inside the
// project, absolute otherwise.
func SkillReference(projectRoot string, s *skills.Skill) string {
	rel, err := filepath.Rel(projectRoot, s.DocPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return s.DocPath
	}
	return filepath.ToSlash(rel)
}

// SkillTemplate builds the template text for a skill that has no explicit
// template: a generated-file header, a description and a prompt made of a
// single include directive for the skill's SKILL.md. The prompt is a TOML
// literal string so the included markdown is taken as-is.
func SkillTemplate(projectRoot string, s *skills.Skill) (string, error) {
	ref := SkillReference(projectRoot, s)

	description := s.Description
	if description == "" {
		description = fmt.Sprintf("Run the %s skill", s.Name)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Generated by gemc from %s. Edits will be overwritten.\n", ref)
	if err := toml.NewEncoder(&buf).Encode(commandHeader{Description: description}); err != nil {
		return "", errors.Wrapf(err, "failed to encode description for skill %s", s.Name)
	}
	fmt.Fprintf(&buf, "prompt = '''\n@{%s}\n'''\n", ref)

	return buf.String(), nil
}
