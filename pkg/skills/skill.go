// Package skills discovers skill definitions under a skills root. A skill is a
// directory holding a SKILL.md documentation file; its name is the directory
// name. Optional YAML frontmatter in SKILL.md supplies a description.
package skills

// FileName is the documentation file every skill directory must contain.
const FileName = "SKILL.md"

// Skill is a discovered skill directory.
type Skill struct {
	Name        string // directory name under the skills root
	Directory   string // full path to the skill directory
	DocPath     string // full path to SKILL.md
	Description string // frontmatter description, empty when absent
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
