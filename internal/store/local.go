package store

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cellar-works/cellar-ctl/internal/logging"
)

// LocalStore is the filesystem-backed store. Objects live as files or
// directories under storeDir; each valid path has a JSON metadata
// document under dbDir.
type LocalStore struct {
	storeDir string
	dbDir    string
}

var _ LocalFSStore = (*LocalStore)(nil)

// NewLocalStore opens a local store rooted at storeDir with its metadata
// db at dbDir, creating both directories if needed.
func NewLocalStore(storeDir, dbDir string) (*LocalStore, error) {
	for _, dir := range []string{storeDir, dbDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
		}
	}
	return &LocalStore{storeDir: storeDir, dbDir: dbDir}, nil
}

// StoreDir returns the directory store objects live in.
func (s *LocalStore) StoreDir() string {
	return s.storeDir
}

// RealPath returns the absolute on-disk location of a store path.
func (s *LocalStore) RealPath(p StorePath) string {
	return filepath.Join(s.storeDir, string(p))
}

func (s *LocalStore) infoPath(p StorePath) string {
	return filepath.Join(s.dbDir, string(p)+".json")
}

// QueryAllValidPaths returns every valid path in the store, sorted.
func (s *LocalStore) QueryAllValidPaths() ([]StorePath, error) {
	entries, err := os.ReadDir(s.dbDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store db: %w", err)
	}

	var paths []StorePath
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok {
			continue
		}
		p, err := ParseStorePath(name)
		if err != nil {
			logging.Warn("ignoring malformed db entry", "entry", e.Name())
			continue
		}
		paths = append(paths, p)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths, nil
}

// IsValidPath reports whether the path has a db entry and its object is
// present on disk.
func (s *LocalStore) IsValidPath(p StorePath) (bool, error) {
	if _, err := os.Stat(s.infoPath(p)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if _, err := os.Stat(s.RealPath(p)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// QueryByName returns all valid paths whose name part equals name.
func (s *LocalStore) QueryByName(name string) ([]StorePath, error) {
	all, err := s.QueryAllValidPaths()
	if err != nil {
		return nil, err
	}

	var matches []StorePath
	for _, p := range all {
		if p.Name() == name {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// PathInfo returns the metadata for a valid path.
func (s *LocalStore) PathInfo(p StorePath) (*ObjectInfo, error) {
	data, err := os.ReadFile(s.infoPath(p))
	if err != nil {
		return nil, fmt.Errorf("no such store path %s: %w", p, err)
	}

	var info ObjectInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("corrupt metadata for %s: %w", p, err)
	}
	return &info, nil
}

// References returns the paths an object directly references.
func (s *LocalStore) References(p StorePath) ([]StorePath, error) {
	info, err := s.PathInfo(p)
	if err != nil {
		return nil, err
	}
	return info.References, nil
}

// ComputeClosure returns the transitive closure of the roots over
// reference edges.
func (s *LocalStore) ComputeClosure(roots []StorePath) ([]StorePath, error) {
	return closure(roots, s.References)
}

// Add imports a file or directory into the store. The digest covers the
// object name, its references, and its full contents, so the same input
// always lands on the same path and re-adding is a no-op.
func (s *LocalStore) Add(source, name string, references []StorePath) (StorePath, error) {
	digest, err := hashSource(source, name, references)
	if err != nil {
		return "", err
	}

	p := StorePath(digest + "-" + name)
	if _, err := ParseStorePath(string(p)); err != nil {
		return "", err
	}

	valid, err := s.IsValidPath(p)
	if err != nil {
		return "", err
	}
	if valid {
		logging.Debug("store object already present", "path", p)
		return p, nil
	}

	if err := copyTree(source, s.RealPath(p)); err != nil {
		return "", fmt.Errorf("failed to import %s: %w", source, err)
	}

	info := &ObjectInfo{
		Path:       p,
		References: references,
		AddedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.writeInfo(info); err != nil {
		return "", err
	}

	logging.Debug("added store object", "path", p, "references", len(references))
	return p, nil
}

func (s *LocalStore) writeInfo(info *ObjectInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.infoPath(info.Path), data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// hashSource digests the object name, sorted references, and the file
// contents rooted at source.
func hashSource(source, name string, references []StorePath) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "name:%s\n", name)

	refs := make([]string, 0, len(references))
	for _, r := range references {
		refs = append(refs, string(r))
	}
	sort.Strings(refs)
	for _, r := range refs {
		fmt.Fprintf(h, "ref:%s\n", r)
	}

	err := filepath.Walk(source, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "entry:%s:%v\n", rel, fi.Mode()&os.ModePerm)
		if !fi.Mode().IsRegular() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(h, f)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", source, err)
	}

	return fmt.Sprintf("%x", h.Sum(nil))[:16], nil
}

// copyTree copies a file or directory tree from src to dst, preserving
// the executable bit.
func copyTree(src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return err
	}

	if fi.IsDir() {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := copyTree(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	mode := os.FileMode(0644)
	if fi.Mode()&0111 != 0 {
		mode = 0755
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
