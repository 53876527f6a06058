package resolve

import (
	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// Resolver resolves installables against a store backend.
type Resolver struct {
	store store.Store
}

// NewResolver creates a resolver bound to the given store.
func NewResolver(s store.Store) *Resolver {
	return &Resolver{store: s}
}

// orderedPathSet keeps store paths deduplicated by identity while
// preserving first-occurrence order.
type orderedPathSet struct {
	seen  map[store.StorePath]bool
	items []store.StorePath
}

func newOrderedPathSet() *orderedPathSet {
	return &orderedPathSet{seen: make(map[store.StorePath]bool)}
}

func (s *orderedPathSet) add(p store.StorePath) {
	if s.seen[p] {
		return
	}
	s.seen[p] = true
	s.items = append(s.items, p)
}

// ResolveToBuildables resolves each installable independently. The first
// unresolvable reference aborts with a ResolutionError naming it.
func (r *Resolver) ResolveToBuildables(installables []Installable, mode Realise) ([]Buildable, error) {
	buildables := make([]Buildable, 0, len(installables))
	for _, inst := range installables {
		b, err := inst.Resolve(r.store, mode)
		if err != nil {
			return nil, err
		}
		logging.Debug("resolved installable", "ref", inst.Raw(), "outputs", len(b.Outputs))
		buildables = append(buildables, b)
	}
	return buildables, nil
}

// ResolveToPaths flattens the resolved buildables to store paths per the
// operate-on selector, duplicates removed, first-occurrence order kept.
func (r *Resolver) ResolveToPaths(installables []Installable, mode Realise, operateOn OperateOn) ([]store.StorePath, error) {
	buildables, err := r.ResolveToBuildables(installables, mode)
	if err != nil {
		return nil, err
	}

	set := newOrderedPathSet()
	for _, b := range buildables {
		for _, p := range b.OutputPaths() {
			switch operateOn {
			case OperateOutput:
				set.add(p)
			case OperateDeriver:
				info, err := r.store.PathInfo(p)
				if err != nil {
					return nil, errors.StoreError("metadata lookup failed", err)
				}
				if info.Deriver == "" {
					return nil, errors.ResolutionError(b.Raw, "no deriver recorded for "+string(p))
				}
				set.add(info.Deriver)
			}
		}
	}

	return set.items, nil
}

// ResolveOne is ResolveToPaths restricted to exactly one resulting path.
func (r *Resolver) ResolveOne(installables []Installable, mode Realise, operateOn OperateOn) (store.StorePath, error) {
	paths, err := r.ResolveToPaths(installables, mode, operateOn)
	if err != nil {
		return "", err
	}
	if len(paths) != 1 {
		return "", errors.UsageErrorf("this command requires exactly one store path, but the arguments produced %d", len(paths))
	}
	return paths[0], nil
}

// ResolveAll bypasses installable resolution and returns every valid
// path the store holds.
func (r *Resolver) ResolveAll() ([]store.StorePath, error) {
	paths, err := r.store.QueryAllValidPaths()
	if err != nil {
		return nil, errors.StoreError("failed to query store paths", err)
	}
	return paths, nil
}

// ExpandClosure expands the given roots to their transitive dependency
// closure over the store's reference graph.
func (r *Resolver) ExpandClosure(paths []store.StorePath) ([]store.StorePath, error) {
	cl, err := r.store.ComputeClosure(paths)
	if err != nil {
		return nil, errors.StoreError("closure computation failed", err)
	}
	return cl, nil
}

// Selection is the shared path-selection engine behind the path-set
// commands: explicit installables or --all, with optional closure
// expansion. All and explicit installables are mutually exclusive.
type Selection struct {
	All       bool
	Recursive bool
	Mode      Realise
	OperateOn OperateOn
}

// SelectPaths applies the selection to the given installables.
func (r *Resolver) SelectPaths(installables []Installable, sel Selection) ([]store.StorePath, error) {
	if sel.All {
		if len(installables) > 0 {
			return nil, errors.UsageError("'--all' does not expect arguments")
		}
		return r.ResolveAll()
	}

	paths, err := r.ResolveToPaths(installables, sel.Mode, sel.OperateOn)
	if err != nil {
		return nil, err
	}

	if sel.Recursive {
		return r.ExpandClosure(paths)
	}
	return paths, nil
}
