// Package verify provides integrity check utilities for the local store
// and for profiles.
//
// Store checks compare the metadata db against the objects on disk:
//
//	StatusOK         - db entry present, files present, references valid
//	StatusMissing    - db entry present but the object's files are gone
//	StatusBrokenRefs - object references paths the db does not know
//	StatusOrphaned   - files on disk without a db entry
//
// Profile checks report generation links whose store target no longer
// resolves.
package verify

import (
	"os"

	"github.com/cellar-works/cellar-ctl/internal/profile"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// Status represents the integrity status of a single store object.
type Status string

const (
	StatusOK         Status = "ok"
	StatusMissing    Status = "missing"
	StatusBrokenRefs Status = "broken-refs"
	StatusOrphaned   Status = "orphaned"
)

// Result is the outcome of checking one store object.
type Result struct {
	Path   store.StorePath
	Status Status
}

// CheckPath checks a single known store object: its files must be on
// disk and every referenced path must have a db entry.
func CheckPath(s store.LocalFSStore, p store.StorePath) (Status, error) {
	if _, err := os.Stat(s.RealPath(p)); err != nil {
		if os.IsNotExist(err) {
			return StatusMissing, nil
		}
		return "", err
	}

	refs, err := s.References(p)
	if err != nil {
		return "", err
	}
	for _, ref := range refs {
		info, err := s.PathInfo(ref)
		if err != nil || info == nil {
			return StatusBrokenRefs, nil
		}
	}

	return StatusOK, nil
}

// CheckStore checks every db entry and reports on-disk directories that
// have no db entry as orphaned. Results are ordered db entries first,
// then orphans in directory order.
func CheckStore(s store.LocalFSStore) ([]Result, error) {
	paths, err := s.QueryAllValidPaths()
	if err != nil {
		return nil, err
	}

	known := make(map[store.StorePath]bool, len(paths))
	var results []Result
	for _, p := range paths {
		known[p] = true
		status, err := CheckPath(s, p)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Path: p, Status: status})
	}

	entries, err := os.ReadDir(s.StoreDir())
	if err != nil {
		if os.IsNotExist(err) {
			return results, nil
		}
		return nil, err
	}
	for _, e := range entries {
		p, err := store.ParseStorePath(e.Name())
		if err != nil {
			continue
		}
		if !known[p] {
			results = append(results, Result{Path: p, Status: StatusOrphaned})
		}
	}

	return results, nil
}

// GetSummary collapses check results to a single status: the first
// non-ok status wins, in result order.
func GetSummary(results []Result) Status {
	for _, r := range results {
		if r.Status != StatusOK {
			return r.Status
		}
	}
	return StatusOK
}

// GenerationResult is the outcome of checking one profile generation.
type GenerationResult struct {
	Generation profile.Generation
	Dangling   bool
}

// CheckProfile reports each generation of the profile and whether its
// store target still resolves.
func CheckProfile(s store.Store, profilePath string) ([]GenerationResult, error) {
	gens, err := profile.Generations(profilePath)
	if err != nil {
		return nil, err
	}

	var results []GenerationResult
	for _, g := range gens {
		dangling := g.Target == ""
		if !dangling {
			valid, err := s.IsValidPath(g.Target)
			if err != nil {
				return nil, err
			}
			dangling = !valid
		}
		results = append(results, GenerationResult{Generation: g, Dangling: dangling})
	}

	return results, nil
}
