// Package profile maintains named profiles backed by a numbered
// generation history. A profile is a symlink chain
// profile -> profile-<N>-link -> store target; publishing a new target
// appends a generation and atomically repoints the top-level link.
//
// Readers never observe a torn profile: the switch goes through a
// temporary symlink renamed over the old one. Concurrent writers are not
// coordinated beyond that; the last rename wins. Callers that need
// linearizable numbering serialize the create+switch pair through the
// advisory lock in this package.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/resolve"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// SwitchProfile atomically repoints the profile's top-level symlink at
// the given generation's link. Any concurrent reader sees either the old
// or the new target, never a missing or partial one.
func SwitchProfile(profilePath string, gen *Generation) error {
	tmp := fmt.Sprintf("%s.tmp-%d", profilePath, os.Getpid())

	// Stale temp link from an interrupted earlier run.
	_ = os.Remove(tmp)

	if err := os.Symlink(filepath.Base(gen.Link), tmp); err != nil {
		return errors.StoreError("failed to prepare profile switch", err)
	}

	if err := os.Rename(tmp, profilePath); err != nil {
		_ = os.Remove(tmp)
		return errors.StoreError("failed to switch profile", err)
	}

	logging.Debug("switched profile", "profile", profilePath, "generation", gen.Number)
	return nil
}

// CurrentGeneration returns the generation the profile currently points
// at, or nil if the profile does not exist yet.
func CurrentGeneration(profilePath string) (*Generation, error) {
	linkName, err := os.Readlink(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.StoreError("failed to read profile link", err)
	}

	base := filepath.Base(profilePath)
	n, ok := parseGenerationNumber(base, filepath.Base(linkName))
	if !ok {
		return nil, errors.StoreError(fmt.Sprintf("profile %s points at %s, which is not a generation link", profilePath, linkName), nil)
	}

	gen := Generation{Number: n, Link: generationLink(profilePath, n)}
	if target, err := os.Readlink(gen.Link); err == nil {
		if p, err := store.ParseStorePath(target); err == nil {
			gen.Target = p
		}
	}

	return &gen, nil
}

// Current resolves the profile to its current store target.
func Current(profilePath string) (store.StorePath, error) {
	gen, err := CurrentGeneration(profilePath)
	if err != nil {
		return "", err
	}
	if gen == nil {
		return "", errors.StoreError(fmt.Sprintf("profile %s does not exist", profilePath), nil)
	}
	if gen.Target == "" {
		return "", errors.StoreError(fmt.Sprintf("generation %d of profile %s is dangling", gen.Number, profilePath), nil)
	}
	return gen.Target, nil
}

// UpdateProfile publishes target as a new generation of the profile and
// makes it current. The create+switch pair runs under the profile's
// advisory lock.
func UpdateProfile(s store.Store, profilePath string, target store.StorePath) error {
	if _, ok := s.(store.LocalFSStore); !ok {
		return errors.StoreCapabilityError("'--profile'")
	}

	if err := os.MkdirAll(filepath.Dir(profilePath), 0755); err != nil {
		return errors.StoreError("failed to create profile directory", err)
	}

	lock, err := acquireLock(profilePath)
	if err != nil {
		return err
	}
	defer lock.release()

	gen, err := CreateGeneration(s, profilePath, target)
	if err != nil {
		return err
	}

	return SwitchProfile(profilePath, gen)
}

// UpdateProfileFromBuildables publishes the single store path a resolved
// buildable set collapses to. Several distinct paths across all outputs
// is an AmbiguousResultError; none is an EmptyResultError. A profile
// always points at a single object.
func UpdateProfileFromBuildables(s store.Store, profilePath string, buildables []resolve.Buildable) error {
	var result store.StorePath
	distinct := make(map[store.StorePath]bool)

	for _, b := range buildables {
		for _, p := range b.OutputPaths() {
			distinct[p] = true
			result = p
		}
	}

	if len(distinct) > 1 {
		return errors.AmbiguousResultError(len(distinct))
	}
	if result == "" {
		return errors.EmptyResultError()
	}

	return UpdateProfile(s, profilePath, result)
}

// Rollback switches the profile to generation n, or to the generation
// preceding the current one when n is zero. The generation's link must
// still exist.
func Rollback(profilePath string, n int) (*Generation, error) {
	gens, err := Generations(profilePath)
	if err != nil {
		return nil, err
	}
	if len(gens) == 0 {
		return nil, errors.StoreError(fmt.Sprintf("profile %s has no generations", profilePath), nil)
	}

	if n == 0 {
		current, err := CurrentGeneration(profilePath)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, errors.StoreError(fmt.Sprintf("profile %s does not exist", profilePath), nil)
		}
		for i := len(gens) - 1; i >= 0; i-- {
			if gens[i].Number < current.Number {
				n = gens[i].Number
				break
			}
		}
		if n == 0 {
			return nil, errors.StoreError(fmt.Sprintf("profile %s has no generation older than %d", profilePath, current.Number), nil)
		}
	}

	var target *Generation
	for i := range gens {
		if gens[i].Number == n {
			target = &gens[i]
			break
		}
	}
	if target == nil {
		return nil, errors.StoreError(fmt.Sprintf("profile %s has no generation %d", profilePath, n), nil)
	}

	lock, err := acquireLock(profilePath)
	if err != nil {
		return nil, err
	}
	defer lock.release()

	if err := SwitchProfile(profilePath, target); err != nil {
		return nil, err
	}
	return target, nil
}
