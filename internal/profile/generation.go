package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// Generation is one numbered historical target of a profile.
type Generation struct {
	Number int
	Link   string          // on-disk symlink <profile>-<N>-link
	Target store.StorePath // what the link points at
}

// generationLink returns the deterministic link name for generation n of
// the given profile path.
func generationLink(profilePath string, n int) string {
	return fmt.Sprintf("%s-%d-link", profilePath, n)
}

// parseGenerationNumber extracts N from a "<base>-<N>-link" entry name.
// The bool result is false for entries that are not generation links of
// this profile.
func parseGenerationNumber(profileBase, entry string) (int, bool) {
	rest, ok := strings.CutPrefix(entry, profileBase+"-")
	if !ok {
		return 0, false
	}
	numStr, ok := strings.CutSuffix(rest, "-link")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(numStr)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Generations lists the profile's generations in increasing number
// order. A profile with no generations yields an empty list, not an
// error.
func Generations(profilePath string) ([]Generation, error) {
	dir := filepath.Dir(profilePath)
	base := filepath.Base(profilePath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.StoreError("failed to read profile directory", err)
	}

	var gens []Generation
	for _, e := range entries {
		n, ok := parseGenerationNumber(base, e.Name())
		if !ok {
			continue
		}

		link := filepath.Join(dir, e.Name())
		gen := Generation{Number: n, Link: link}

		if target, err := os.Readlink(link); err == nil {
			if p, err := store.ParseStorePath(target); err == nil {
				gen.Target = p
			}
		}

		gens = append(gens, gen)
	}

	sort.Slice(gens, func(i, j int) bool { return gens[i].Number < gens[j].Number })
	return gens, nil
}

// CreateGeneration creates the next generation of the profile pointing
// at target. Numbering is max(existing)+1, so numbers are never reused
// even after deletions. The store must have local filesystem semantics.
func CreateGeneration(s store.Store, profilePath string, target store.StorePath) (*Generation, error) {
	lfs, ok := s.(store.LocalFSStore)
	if !ok {
		return nil, errors.StoreCapabilityError("'--profile'")
	}

	valid, err := s.IsValidPath(target)
	if err != nil {
		return nil, errors.StoreError("validity check failed", err)
	}
	if !valid {
		return nil, errors.InvalidPath(string(target))
	}

	gens, err := Generations(profilePath)
	if err != nil {
		return nil, err
	}

	next := 1
	if len(gens) > 0 {
		next = gens[len(gens)-1].Number + 1
	}

	if err := os.MkdirAll(filepath.Dir(profilePath), 0755); err != nil {
		return nil, errors.StoreError("failed to create profile directory", err)
	}

	link := generationLink(profilePath, next)
	// A concurrent creator may have claimed the same number; without the
	// advisory lock the loser surfaces the symlink failure.
	if err := os.Symlink(lfs.RealPath(target), link); err != nil {
		return nil, errors.StoreError(fmt.Sprintf("failed to create generation %d", next), err)
	}

	logging.Debug("created generation", "profile", profilePath, "number", next, "target", target)
	return &Generation{Number: next, Link: link, Target: target}, nil
}
