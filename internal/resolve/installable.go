// Package resolve turns user-supplied installable references into
// concrete store paths.
//
// An installable is one of a closed set of reference kinds: a store path,
// a symbolic name, or either of those with a ^output selection suffix.
// Each kind resolves independently against a store backend.
package resolve

import (
	"sort"
	"strings"

	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// Realise controls how much a resolution is allowed to make real.
type Realise int

const (
	// RealiseNothing resolves against store metadata only.
	RealiseNothing Realise = iota
	// RealiseDryRun reports what RealiseFull would require without
	// requiring it.
	RealiseDryRun
	// RealiseFull requires the resolved objects to be present on disk.
	RealiseFull
)

// OperateOn selects whether path-level operations work on resolved
// outputs or on the derivers that produced them.
type OperateOn int

const (
	OperateOutput OperateOn = iota
	OperateDeriver
)

// Buildable is the resolved form of an installable: a mapping from
// output name to store path. Output names are unique within one
// Buildable by construction.
type Buildable struct {
	Raw     string
	Outputs map[string]store.StorePath
}

// OutputPaths returns the buildable's paths ordered by output name.
func (b Buildable) OutputPaths() []store.StorePath {
	names := make([]string, 0, len(b.Outputs))
	for name := range b.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]store.StorePath, 0, len(names))
	for _, name := range names {
		paths = append(paths, b.Outputs[name])
	}
	return paths
}

// Installable is a user-facing reference to one or more store outputs.
// The set of reference kinds is closed: parse produces exactly one of
// the variants below.
type Installable interface {
	// Raw returns the reference as the user wrote it.
	Raw() string

	// Resolve resolves the reference against the store.
	Resolve(s store.Store, mode Realise) (Buildable, error)
}

// Parse classifies a raw reference into its installable variant.
// References containing a path separator or shaped like a store path
// resolve by path; everything else resolves by symbolic name. A trailing
// "^out1,out2" selects a subset of outputs.
func Parse(raw string) (Installable, error) {
	if raw == "" {
		return nil, errors.ResolutionError(raw, "empty installable reference")
	}

	ref := raw
	var outputs []string
	if i := strings.IndexByte(ref, '^'); i >= 0 {
		sel := ref[i+1:]
		ref = ref[:i]
		if sel == "" {
			return nil, errors.ResolutionError(raw, "empty output selection")
		}
		outputs = strings.Split(sel, ",")
	}

	var inner Installable
	if strings.ContainsRune(ref, '/') || looksLikeStorePath(ref) {
		p, err := store.ParseStorePath(ref)
		if err != nil {
			return nil, errors.ResolutionError(raw, err.Error())
		}
		inner = &PathInstallable{raw: raw, path: p}
	} else {
		inner = &NameInstallable{raw: raw, name: ref}
	}

	if outputs != nil {
		return &OutputsInstallable{raw: raw, inner: inner, outputs: outputs}, nil
	}
	return inner, nil
}

// ParseAll parses a list of raw references, failing on the first bad one.
func ParseAll(raws []string) ([]Installable, error) {
	installables := make([]Installable, 0, len(raws))
	for _, raw := range raws {
		inst, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		installables = append(installables, inst)
	}
	return installables, nil
}

func looksLikeStorePath(ref string) bool {
	_, err := store.ParseStorePath(ref)
	return err == nil
}

// PathInstallable references a store object directly by its path.
type PathInstallable struct {
	raw  string
	path store.StorePath
}

func (i *PathInstallable) Raw() string { return i.raw }

func (i *PathInstallable) Resolve(s store.Store, mode Realise) (Buildable, error) {
	return resolvePath(s, i.raw, i.path, mode)
}

// NameInstallable references a store object by its symbolic name. The
// name must match exactly one valid path.
type NameInstallable struct {
	raw  string
	name string
}

func (i *NameInstallable) Raw() string { return i.raw }

func (i *NameInstallable) Resolve(s store.Store, mode Realise) (Buildable, error) {
	matches, err := s.QueryByName(i.name)
	if err != nil {
		return Buildable{}, errors.StoreError("name lookup failed", err)
	}

	switch len(matches) {
	case 0:
		return Buildable{}, errors.ResolutionError(i.raw, "no store object with that name")
	case 1:
		return resolvePath(s, i.raw, matches[0], mode)
	default:
		candidates := make([]string, len(matches))
		for n, m := range matches {
			candidates[n] = m.String()
		}
		return Buildable{}, errors.ResolutionError(i.raw, "ambiguous, matches "+strings.Join(candidates, ", "))
	}
}

// OutputsInstallable wraps another installable and selects a subset of
// its outputs.
type OutputsInstallable struct {
	raw     string
	inner   Installable
	outputs []string
}

func (i *OutputsInstallable) Raw() string { return i.raw }

func (i *OutputsInstallable) Resolve(s store.Store, mode Realise) (Buildable, error) {
	b, err := i.inner.Resolve(s, mode)
	if err != nil {
		return Buildable{}, err
	}

	selected := make(map[string]store.StorePath, len(i.outputs))
	for _, name := range i.outputs {
		p, ok := b.Outputs[name]
		if !ok {
			return Buildable{}, errors.ResolutionError(i.raw, "no output named "+name)
		}
		selected[name] = p
	}

	return Buildable{Raw: i.raw, Outputs: selected}, nil
}

// resolvePath finishes resolution once a concrete store path is known:
// it loads metadata, applies the realise mode, and shapes the outputs.
func resolvePath(s store.Store, raw string, p store.StorePath, mode Realise) (Buildable, error) {
	info, err := s.PathInfo(p)
	if err != nil {
		return Buildable{}, errors.ResolutionError(raw, "path is not known to the store")
	}

	switch mode {
	case RealiseFull:
		valid, err := s.IsValidPath(p)
		if err != nil {
			return Buildable{}, errors.StoreError("validity check failed", err)
		}
		if !valid {
			return Buildable{}, errors.InvalidPath(string(p))
		}
	case RealiseDryRun:
		valid, err := s.IsValidPath(p)
		if err != nil {
			return Buildable{}, errors.StoreError("validity check failed", err)
		}
		if !valid {
			logging.UserInfo("would realise %s", p)
		}
	}

	outputs := info.Outputs
	if len(outputs) == 0 {
		outputs = map[string]store.StorePath{store.DefaultOutput: p}
	}

	return Buildable{Raw: raw, Outputs: outputs}, nil
}
