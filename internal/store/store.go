// Package store defines the content-addressed object store interface for
// cellar-ctl and its local filesystem backend. This abstraction allows for
// multiple backend implementations and enables comprehensive testing
// through mocking.
package store

import (
	"fmt"
	"regexp"
	"strings"
)

// storePathRegex validates the <digest>-<name> form of a store path.
var storePathRegex = regexp.MustCompile(`^[0-9a-f]{16}-[a-zA-Z0-9][a-zA-Z0-9+._-]*$`)

// StorePath identifies an immutable object in the store. Its string form
// is "<digest>-<name>". StorePaths are comparable and totally ordered by
// their string form, which keeps iteration deterministic.
type StorePath string

// ParseStorePath validates s and returns it as a StorePath. The base name
// of an absolute path inside the store directory is accepted too.
func ParseStorePath(s string) (StorePath, error) {
	base := s
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		base = s[i+1:]
	}
	if !storePathRegex.MatchString(base) {
		return "", fmt.Errorf("malformed store path %q", s)
	}
	return StorePath(base), nil
}

func (p StorePath) String() string {
	return string(p)
}

// Digest returns the digest half of the store path.
func (p StorePath) Digest() string {
	if i := strings.IndexByte(string(p), '-'); i >= 0 {
		return string(p)[:i]
	}
	return string(p)
}

// Name returns the human-readable half of the store path.
func (p StorePath) Name() string {
	if i := strings.IndexByte(string(p), '-'); i >= 0 {
		return string(p)[i+1:]
	}
	return ""
}

// DefaultOutput is the output name used when an object declares none.
const DefaultOutput = "out"

// ObjectInfo holds the per-object metadata tracked by the store db.
type ObjectInfo struct {
	Path       StorePath            `json:"path"`
	References []StorePath          `json:"references,omitempty"`
	Outputs    map[string]StorePath `json:"outputs,omitempty"` // output name -> path
	Deriver    StorePath            `json:"deriver,omitempty"`
	AddedAt    string               `json:"addedAt,omitempty"`
}

// Store is the interface that store backends must implement. Methods are
// read-only queries; writes go through backend-specific operations.
type Store interface {
	// QueryAllValidPaths returns every valid path the store holds,
	// in sorted order.
	QueryAllValidPaths() ([]StorePath, error)

	// IsValidPath reports whether the store holds the given path.
	IsValidPath(p StorePath) (bool, error)

	// QueryByName returns all valid paths whose name part equals name,
	// in sorted order.
	QueryByName(name string) ([]StorePath, error)

	// PathInfo returns the metadata for a valid path.
	PathInfo(p StorePath) (*ObjectInfo, error)

	// References returns the paths an object directly references.
	References(p StorePath) ([]StorePath, error)

	// ComputeClosure returns the transitive closure of the roots over
	// reference edges. Every reachable path appears exactly once; roots
	// come first, in the order given.
	ComputeClosure(roots []StorePath) ([]StorePath, error)
}

// LocalFSStore is the capability interface for backends with local
// filesystem semantics. Profile operations require it.
type LocalFSStore interface {
	Store

	// StoreDir returns the directory store objects live in.
	StoreDir() string

	// RealPath returns the absolute on-disk location of a store path.
	RealPath(p StorePath) string

	// Add imports a file or directory into the store under the given
	// name, recording the given references, and returns the new path.
	Add(source, name string, references []StorePath) (StorePath, error)
}

// closure is the shared traversal used by backends: a breadth-first walk
// over reference edges with a visited set, so repeated or cyclic edges
// are followed at most once. Output preserves first-visit order.
func closure(roots []StorePath, refs func(StorePath) ([]StorePath, error)) ([]StorePath, error) {
	visited := make(map[StorePath]bool, len(roots))
	var result []StorePath

	queue := make([]StorePath, 0, len(roots))
	for _, r := range roots {
		if visited[r] {
			continue
		}
		visited[r] = true
		queue = append(queue, r)
		result = append(result, r)
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		references, err := refs(p)
		if err != nil {
			return nil, err
		}

		for _, ref := range references {
			if visited[ref] {
				continue
			}
			visited[ref] = true
			queue = append(queue, ref)
			result = append(result, ref)
		}
	}

	return result, nil
}
