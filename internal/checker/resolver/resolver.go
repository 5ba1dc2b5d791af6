// Package resolver builds the dependency closure of a root binary: the
// breadth-first, deduplicated, cycle-safe list of the root plus every shared
// library it transitively declares, each parsed into its own symbol fact
// table.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isseis/go-symbol-audit/internal/checker/symtab"
)

// Error definitions
var (
	// ErrUnresolvedDependency is returned when a declared library name
	// cannot be located on the search path. Resolution treats this as
	// fatal: a partial closure would silently weaken every rule that
	// tests for absence.
	ErrUnresolvedDependency = errors.New("unresolved dependency")
)

// BinaryReader parses one file into its symbol fact table. Implemented by
// elfreader.Reader; tests substitute fakes.
type BinaryReader interface {
	Read(path string) (*symtab.Binary, error)
}

// Resolver locates and parses a binary's transitive dependencies.
type Resolver struct {
	reader     BinaryReader
	searchPath []string
}

// New creates a Resolver that looks up library names in the given
// directories, in order.
func New(reader BinaryReader, searchPath []string) *Resolver {
	return &Resolver{
		reader:     reader,
		searchPath: searchPath,
	}
}

// Resolve builds the closure rooted at rootPath. Traversal is breadth-first:
// the root's dependencies are visited before any of theirs, so the closure
// order (and therefore first-definition-wins symbol lookup) is deterministic.
// The visited set is keyed by canonicalized path, which makes circular and
// diamond dependency graphs terminate with each binary parsed exactly once.
func (r *Resolver) Resolve(rootPath string) (*symtab.Closure, error) {
	rootReal, err := canonicalize(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize root path: %w", err)
	}

	closure := &symtab.Closure{}
	visited := map[string]struct{}{rootReal: {}}
	queue := []string{rootReal}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		bin, err := r.reader.Read(path)
		if err != nil {
			return nil, err
		}
		closure.Binaries = append(closure.Binaries, bin)

		for _, name := range bin.NeededLibs {
			depPath, err := r.locate(name)
			if err != nil {
				return nil, fmt.Errorf("%w (needed by %s)", err, path)
			}
			depReal, err := canonicalize(depPath)
			if err != nil {
				return nil, fmt.Errorf("failed to canonicalize %s: %w", depPath, err)
			}
			if _, seen := visited[depReal]; seen {
				continue
			}
			visited[depReal] = struct{}{}
			queue = append(queue, depReal)
		}
	}

	slog.Debug("dependency closure resolved",
		slog.String("root", rootPath),
		slog.Int("binaries", len(closure.Binaries)))

	return closure, nil
}

// locate finds a declared library name on the search path. Absolute names
// bypass the search path entirely. For each directory, the name is first
// joined directly; if that misses, the directory subtree is scanned for the
// first entry with a matching base name before moving on to the next
// directory.
func (r *Resolver) locate(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s: %s", ErrUnresolvedDependency, name, err)
		}
		return name, nil
	}

	for _, dir := range r.searchPath {
		direct := filepath.Join(dir, name)
		if info, err := os.Stat(direct); err == nil && info.Mode().IsRegular() {
			return direct, nil
		}
		if found, ok := scanSubtree(dir, name); ok {
			return found, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnresolvedDependency, name)
}

// scanSubtree walks dir looking for a regular file whose base name matches
// name, returning the first hit in lexical walk order.
func scanSubtree(dir, name string) (string, bool) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal; the name
			// may still be found in a later search path entry.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil || found == "" {
		return "", false
	}
	return found, true
}

// canonicalize resolves symlinks and produces an absolute path so the
// visited set deduplicates aliases of the same file.
func canonicalize(path string) (string, error) {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(real)
}
