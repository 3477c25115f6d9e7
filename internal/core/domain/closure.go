package domain

import (
	"iter"
	"slices"
)

// DependencyClosure is an ordered, duplicate-free sequence of target identities.
// The first occurrence of an identity determines its position.
// A closure is immutable; Append returns a new closure.
type DependencyClosure struct {
	targets []TargetIdentity
}

// NewDependencyClosure builds a closure from the given identities, dropping repeats.
func NewDependencyClosure(ids ...TargetIdentity) DependencyClosure {
	return DependencyClosure{}.Append(ids...)
}

// Append returns a new closure with the identities not yet present added at the end.
func (c DependencyClosure) Append(ids ...TargetIdentity) DependencyClosure {
	seen := make(map[TargetIdentity]struct{}, len(c.targets)+len(ids))
	out := make([]TargetIdentity, 0, len(c.targets)+len(ids))
	for _, id := range c.targets {
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return DependencyClosure{targets: out}
}

// Contains reports whether the identity is part of the closure.
func (c DependencyClosure) Contains(id TargetIdentity) bool {
	return slices.Contains(c.targets, id)
}

// Len returns the number of identities in the closure.
func (c DependencyClosure) Len() int {
	return len(c.targets)
}

// Targets returns a copy of the identities in closure order.
func (c DependencyClosure) Targets() []TargetIdentity {
	return slices.Clone(c.targets)
}

// All returns an iterator over the identities in closure order.
func (c DependencyClosure) All() iter.Seq[TargetIdentity] {
	return slices.Values(c.targets)
}

// Equal reports whether both closures hold the same identities in the same order.
func (c DependencyClosure) Equal(other DependencyClosure) bool {
	return slices.Equal(c.targets, other.targets)
}

// ExportsFunc returns the exported deps directly declared by a target.
type ExportsFunc func(TargetIdentity) []TargetIdentity

// BuildClosure computes the dependency closure of a rule.
// The result holds the declared deps in order, then the transitive exported deps of
// every provided dep (the provided dep itself is excluded), then the tool deps.
func BuildClosure(declared, provided []TargetIdentity, exportedOf ExportsFunc, toolDeps []TargetIdentity) DependencyClosure {
	closure := NewDependencyClosure(declared...)
	for _, p := range provided {
		closure = closure.Append(TransitiveExports(p, exportedOf)...)
	}
	return closure.Append(toolDeps...)
}

// TransitiveExports returns every identity reachable from root by following exported
// deps, in depth-first preorder. The root itself is never part of the result.
func TransitiveExports(root TargetIdentity, exportedOf ExportsFunc) []TargetIdentity {
	if exportedOf == nil {
		return nil
	}

	var res []TargetIdentity
	visited := map[TargetIdentity]bool{root: true}

	var visit func(id TargetIdentity)
	visit = func(id TargetIdentity) {
		for _, exp := range exportedOf(id) {
			if visited[exp] {
				continue
			}
			visited[exp] = true
			res = append(res, exp)
			visit(exp)
		}
	}
	visit(root)

	return res
}
