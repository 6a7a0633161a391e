// Package config loads minic module manifests. A manifest is written in
// YAML (minic.yaml) or TOML (minic.toml); the format follows the file
// extension.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pontaoski/minic/types"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// DefaultName is the manifest file created by Init.
const DefaultName = "minic.yaml"

// Names lists the manifest files Find looks for, in order.
var Names = []string{"minic.yaml", "minic.yml", "minic.toml"}

// DefaultSources is used when a manifest lists no sources.
var DefaultSources = []string{"*.mc"}

type Format int

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	if f == TOML {
		return "toml"
	}
	return "yaml"
}

// FormatOf picks the manifest format from a file name. Anything that is not
// .toml is read as YAML.
func FormatOf(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		return TOML
	}
	return YAML
}

// Manifest describes a minic module.
type Manifest struct {
	Package string            `yaml:"package" toml:"package"`
	Sources []string          `yaml:"sources,omitempty" toml:"sources,omitempty"`
	Types   map[string]string `yaml:"types,omitempty" toml:"types,omitempty"`
}

// New returns a manifest for a fresh module.
func New(pkg string) *Manifest {
	return &Manifest{Package: pkg, Sources: DefaultSources}
}

// Parse decodes a manifest in the given format.
func Parse(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}
	var err error
	switch format {
	case TOML:
		err = toml.Unmarshal(data, m)
	default:
		err = yaml.Unmarshal(data, m)
	}
	if err != nil {
		return nil, tracerr.Errorf("%s parse error: %v", format, err)
	}
	if m.Package == "" {
		return nil, tracerr.Errorf("manifest has no package name")
	}
	if len(m.Sources) == 0 {
		m.Sources = DefaultSources
	}
	return m, nil
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	m, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, tracerr.Errorf("error reading %s: %v", path, tracerr.Unwrap(err))
	}
	return m, nil
}

// Find returns the path of the first manifest present in dir.
func Find(dir string) (string, error) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", tracerr.Errorf("no manifest (%s) in %s", strings.Join(Names, ", "), dir)
}

// Marshal encodes m in the given format.
func (m *Manifest) Marshal(format Format) ([]byte, error) {
	if format == TOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, tracerr.Wrap(err)
		}
		return buf.Bytes(), nil
	}
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return out, nil
}

// Save writes m to path, refusing to overwrite an existing file.
func (m *Manifest) Save(path string) error {
	out, err := m.Marshal(FormatOf(path))
	if err != nil {
		return err
	}
	fi, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer fi.Close()

	_, err = fi.Write(out)
	return tracerr.Wrap(err)
}

// Apply registers the manifest's type aliases with reg. An alias may name
// another alias from the same manifest.
func (m *Manifest) Apply(reg *types.Registry) error {
	pending := make([]string, 0, len(m.Types))
	for name := range m.Types {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for len(pending) > 0 {
		var next []string
		for _, name := range pending {
			target := m.Types[name]
			if _, ok := reg.Lookup(target); !ok {
				next = append(next, name)
				continue
			}
			if err := reg.Alias(name, target); err != nil {
				return tracerr.Wrap(err)
			}
		}
		if len(next) == len(pending) {
			name := next[0]
			return tracerr.Errorf("cannot alias '%s' to unknown type '%s'", name, m.Types[name])
		}
		pending = next
	}
	return nil
}

// SourceFiles expands the source globs relative to dir. The result is
// sorted and free of duplicates.
func (m *Manifest) SourceFiles(dir string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range m.Sources {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, tracerr.Errorf("bad source pattern %q: %v", pattern, err)
		}
		for _, f := range matches {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	if len(files) == 0 {
		return nil, tracerr.Errorf("no source files match %s", fmt.Sprint(m.Sources))
	}
	sort.Strings(files)
	return files, nil
}
