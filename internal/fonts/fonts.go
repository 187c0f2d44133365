// Package fonts resolves the UI font named in the editor preferences to a file on disk.
package fonts

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Exts are the font file extensions raylib can load.
var Exts = []string{".ttf", ".otf"}

// Dirs are the directories searched by family name, relative to the process working directory.
var Dirs = []string{"assets/fonts", "../../assets/fonts"}

// Resolve returns a loadable path for name. name may be a path to a font file or a family name
// such as "Inter" or "Google Sans", matched against the files under Dirs.
func Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", os.ErrNotExist
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return name, nil
	}
	for _, dir := range Dirs {
		if rel, err := Find(os.DirFS(dir), name); err == nil {
			return filepath.Join(dir, filepath.FromSlash(rel)), nil
		}
	}
	return "", os.ErrNotExist
}

// Find searches fsys for a font whose path contains search, ignoring case, spaces, dashes and
// underscores. When several match, one with "regular" in its path wins; otherwise the first in
// walk order.
func Find(fsys fs.FS, search string) (string, error) {
	norm := normalize(strings.TrimSuffix(search, path.Ext(search)))
	if norm == "" {
		return "", os.ErrNotExist
	}
	var matches []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isFont(p) {
			return nil
		}
		if strings.Contains(normalize(p), norm) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

func isFont(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}
