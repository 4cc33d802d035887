package skills

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jingkaihe/gemc/pkg/logger"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Discovery enumerates skills under a single skills root.
type Discovery struct {
	root string
}

// NewDiscovery creates a Discovery rooted at dir.
func NewDiscovery(dir string) *Discovery {
	return &Discovery{root: dir}
}

// Root returns the skills root directory.
func (d *Discovery) Root() string {
	return d.root
}

// Discover returns every valid skill sorted by name. A missing root yields no
// skills and no error. Entries that are hidden, are not directories (after
// following symlinks) or lack a regular SKILL.md file are skipped.
func (d *Discovery) Discover(ctx context.Context) ([]*Skill, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.G(ctx).WithField("dir", d.root).Debug("skills directory not found")
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read skills directory %s", d.root)
	}

	var found []*Skill
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		dir := filepath.Join(d.root, name)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		docPath := filepath.Join(dir, FileName)
		docInfo, err := os.Stat(docPath)
		if err != nil || !docInfo.Mode().IsRegular() {
			continue
		}

		skill := &Skill{
			Name:      name,
			Directory: dir,
			DocPath:   docPath,
		}
		if md, err := loadMetadata(docPath); err == nil {
			skill.Description = md.Description
		} else {
			logger.G(ctx).WithError(err).WithField("skill", name).Debug("no usable frontmatter")
		}
		found = append(found, skill)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// Names returns the sorted names of all valid skills.
func (d *Discovery) Names(ctx context.Context) ([]string, error) {
	found, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(found))
	for _, s := range found {
		names = append(names, s.Name)
	}
	return names, nil
}

// loadMetadata parses the YAML frontmatter of a SKILL.md file.
func loadMetadata(path string) (Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, errors.Wrap(err, "failed to read skill file")
	}
	return parseMetadata(content)
}

func parseMetadata(content []byte) (Metadata, error) {
	if !bytes.HasPrefix(content, []byte("---")) {
		return Metadata{}, errors.New("missing frontmatter")
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))
	pctx := parser.NewContext()
	md.Parser().Parse(text.NewReader(content), parser.WithContext(pctx))

	data, err := meta.TryGet(pctx)
	if err != nil {
		return Metadata{}, errors.Wrap(err, "failed to parse frontmatter")
	}
	if data == nil {
		return Metadata{}, errors.New("missing frontmatter")
	}

	var m Metadata
	m.Name, _ = data["name"].(string)
	m.Description, _ = data["description"].(string)
	m.Description = strings.TrimSpace(m.Description)
	return m, nil
}
