package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pontaoski/minic/types"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	want := &Manifest{
		Package: "geometry",
		Sources: []string{"src/*.mc", "main.mc"},
		Types:   map[string]string{"i32": "int", "f64": "double"},
	}

	t.Run("yaml", func(t *testing.T) {
		path := write(t, dir, "minic.yaml", `
package: geometry
sources:
  - src/*.mc
  - main.mc
types:
  i32: int
  f64: double
`)
		m, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(m, want) {
			t.Errorf("got %+v, want %+v", m, want)
		}
	})

	t.Run("toml", func(t *testing.T) {
		path := write(t, dir, "minic.toml", `
package = "geometry"
sources = ["src/*.mc", "main.mc"]

[types]
i32 = "int"
f64 = "double"
`)
		m, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(m, want) {
			t.Errorf("got %+v, want %+v", m, want)
		}
	})
}

func TestLoadDefaultsAndErrors(t *testing.T) {
	dir := t.TempDir()

	m, err := Load(write(t, dir, "bare.yaml", "package: bare\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Sources, DefaultSources) {
		t.Errorf("expected default sources, got %v", m.Sources)
	}

	if _, err := Load(write(t, dir, "nameless.yaml", "sources: [a.mc]\n")); err == nil ||
		!strings.Contains(err.Error(), "no package name") {
		t.Errorf("expected a missing package error, got %v", err)
	}
	if _, err := Load(write(t, dir, "broken.toml", "package = \n")); err == nil ||
		!strings.Contains(err.Error(), "toml parse error") {
		t.Errorf("expected a toml parse error, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSaveAndFind(t *testing.T) {
	for _, name := range []string{"minic.yaml", "minic.toml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if _, err := Find(dir); err == nil {
				t.Fatal("expected no manifest in an empty directory")
			}

			m := New("demo")
			m.Types = map[string]string{"word": "long"}
			path := filepath.Join(dir, name)
			if err := m.Save(path); err != nil {
				t.Fatal(err)
			}
			if err := m.Save(path); err == nil {
				t.Error("expected Save to refuse overwriting")
			}

			found, err := Find(dir)
			if err != nil {
				t.Fatal(err)
			}
			if found != path {
				t.Errorf("found %s, want %s", found, path)
			}
			back, err := Load(found)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(back, m) {
				t.Errorf("got %+v, want %+v", back, m)
			}
		})
	}
}

func TestApply(t *testing.T) {
	m := &Manifest{
		Package: "p",
		Types:   map[string]string{"a_int": "b_int", "b_int": "int", "real": "double"},
	}
	reg := types.NewRegistry()
	if err := m.Apply(reg); err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{"a_int": "int", "b_int": "int", "real": "double"} {
		b, ok := reg.Lookup(name)
		if !ok {
			t.Errorf("%s was not registered", name)
			continue
		}
		if b.Type.String() != want {
			t.Errorf("%s aliases %s, want %s", name, b.Type, want)
		}
	}

	bad := &Manifest{Package: "p", Types: map[string]string{"x": "y"}}
	if err := bad.Apply(types.NewRegistry()); err == nil ||
		!strings.Contains(err.Error(), "cannot alias 'x' to unknown type 'y'") {
		t.Errorf("expected an unknown type error, got %v", err)
	}

	clash := &Manifest{Package: "p", Types: map[string]string{"int": "long"}}
	if err := clash.Apply(types.NewRegistry()); err == nil {
		t.Error("expected redefining a builtin to fail")
	}
}

func TestSourceFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	write(t, dir, "main.mc", "")
	write(t, dir, "src/a.mc", "")
	write(t, dir, "src/b.mc", "")
	write(t, dir, "notes.txt", "")

	m := &Manifest{Package: "p", Sources: []string{"src/*.mc", "*.mc", "src/a.mc"}}
	files, err := m.SourceFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "main.mc"),
		filepath.Join(dir, "src/a.mc"),
		filepath.Join(dir, "src/b.mc"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("got %v, want %v", files, want)
	}

	empty := &Manifest{Package: "p", Sources: []string{"*.c"}}
	if _, err := empty.SourceFiles(dir); err == nil {
		t.Error("expected an error when nothing matches")
	}
}
