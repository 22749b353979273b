package resources

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Relocate converts a document-relative path to a path relative to the
// working directory. base is the path of the document.
func Relocate(path, base string) string {
	if filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}

// Friends records the files an output document needs next to itself.
// Every source file is mapped to one target path below the import folder
// of the output file; adding it again yields the same target.
type Friends struct {
	output string            // path of the output document
	root   string            // import folder, `<output>-imports`
	from   map[string]string // source -> target
	to     map[string]string // target -> source
}

// NewFriends creates the bookkeeping for an output document.
func NewFriends(output string) *Friends {
	root := strings.TrimSuffix(output, filepath.Ext(output))
	return &Friends{
		output: output,
		root:   root + "-imports",
		from:   make(map[string]string),
		to:     make(map[string]string),
	}
}

// Get returns the target of a source file, if it has been added.
func (fr *Friends) Get(source string) (string, bool) {
	t, ok := fr.from[filepath.Clean(source)]
	return t, ok
}

// Add maps a source file to a target path below the import folder, without
// copying it. Targets never collide: a numeric suffix is appended to the
// file name if needed.
func (fr *Friends) Add(source string) string {
	source = filepath.Clean(source)
	if t, ok := fr.from[source]; ok {
		return t
	}
	rel := source
	if filepath.IsAbs(rel) {
		rel = filepath.Base(rel)
	}
	rel = strings.TrimLeft(filepath.ToSlash(rel), "./")
	ext := filepath.Ext(rel)
	stem := filepath.Join(fr.root, strings.TrimSuffix(rel, ext))
	target := stem + ext
	for cnt := 0; fr.to[target] != ""; cnt++ {
		target = fmt.Sprintf("%s-%d%s", stem, cnt, ext)
	}
	fr.from[source] = target
	fr.to[target] = source
	tracer().Debugf("friend file %s -> %s", source, target)
	return target
}

// Load adds a source file and copies it to its target, creating
// directories as needed. A file is copied only once. The returned path is
// relative to the output document.
func (fr *Friends) Load(source string) (string, error) {
	if t, ok := fr.Get(source); ok {
		return fr.Relative(t), nil
	}
	target := fr.Add(source)
	if err := copyFile(filepath.Clean(source), target); err != nil {
		return fr.Relative(target), NotFound(source, friendResourceType)
	}
	return fr.Relative(target), nil
}

// Relative returns a target path relative to the output document.
func (fr *Friends) Relative(target string) string {
	rel, err := filepath.Rel(filepath.Dir(fr.output), target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

// Files returns the number of friend files.
func (fr *Friends) Files() int {
	return len(fr.from)
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	if err = os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
