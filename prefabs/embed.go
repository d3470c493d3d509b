package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// EmbeddedFS exposes the built-in prefabs and scripts.
func EmbeddedFS() fs.FS {
	return embedded
}

// Library resolves prefab and script files, preferring a disk directory
// over the embedded copies so edits can be picked up at runtime. Parsed
// specs are cached until Invalidate.
type Library struct {
	dir      string
	fallback fs.FS
	specs    map[string]EntityBuildSpec
}

// NewLibrary reads from dir first and the embedded prefabs second. An empty
// dir uses only the embedded files.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir, fallback: embedded, specs: map[string]EntityBuildSpec{}}
}

// NewLibraryFS serves files from fsys only.
func NewLibraryFS(fsys fs.FS) *Library {
	return &Library{fallback: fsys, specs: map[string]EntityBuildSpec{}}
}

func (l *Library) Dir() string {
	return l.dir
}

// Load returns the raw bytes of a prefab file.
func (l *Library) Load(name string) ([]byte, error) {
	return l.read(cleanPrefabPath(name))
}

// LoadScript returns the source of a script. Names may be given with or
// without the scripts/ prefix.
func (l *Library) LoadScript(name string) ([]byte, error) {
	return l.read(cleanScriptPath(name))
}

func (l *Library) read(clean string) ([]byte, error) {
	if clean == "" {
		return nil, fs.ErrNotExist
	}
	if l.dir != "" {
		data, err := os.ReadFile(l.diskPath(clean))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if l.fallback == nil {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(l.fallback, clean)
}

// ModTime reports when the disk override of name last changed.
func (l *Library) ModTime(name string) (time.Time, bool) {
	if l.dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(l.diskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Invalidate drops the cached spec for name. An empty name drops all.
func (l *Library) Invalidate(name string) {
	if name == "" {
		clear(l.specs)
		return
	}
	delete(l.specs, cleanPrefabPath(name))
}

// Name maps a file path, as reported by a Watcher, to the library name
// used by Load and LoadScript.
func (l *Library) Name(path string) string {
	s := filepath.ToSlash(path)
	if l.dir != "" {
		if rel, err := filepath.Rel(l.dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			s = filepath.ToSlash(rel)
		}
	}
	if isScriptFile(s) {
		return cleanScriptPath(s)
	}
	return cleanPrefabPath(s)
}

func (l *Library) diskPath(clean string) string {
	return filepath.Join(l.dir, filepath.FromSlash(clean))
}

// cleanPrefabPath trims a leading prefabs/ and defaults the extension to
// .yaml, so scenes may name prefabs bare.
func cleanPrefabPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return "scripts/" + s
}
