// Package domain contains the core domain models of the rule expansion engine:
// target identities, dependency closures, declarative arguments and build rules.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// RuleGraph is a dependency graph of constructed build rules.
type RuleGraph struct {
	rules          map[TargetIdentity]*BuildRule
	executionOrder []TargetIdentity
}

// NewRuleGraph creates a new empty RuleGraph.
func NewRuleGraph() *RuleGraph {
	return &RuleGraph{
		rules: make(map[TargetIdentity]*BuildRule),
	}
}

// AddRule adds a rule to the graph.
// It returns an error if a rule with the same identity already exists.
func (g *RuleGraph) AddRule(r *BuildRule) error {
	if _, exists := g.rules[r.Target()]; exists {
		return zerr.With(zerr.Wrap(ErrRuleAlreadyExists, "cannot add rule"), "target", r.Target().String())
	}
	g.rules[r.Target()] = r
	return nil
}

// Len returns the number of rules in the graph.
func (g *RuleGraph) Len() int {
	return len(g.rules)
}

// Validate checks for cycles and missing dependencies using a topological sort.
// It populates the execution order if successful. Rules are visited in sorted
// identity order so the resulting order is deterministic.
func (g *RuleGraph) Validate() error {
	g.executionOrder = make([]TargetIdentity, 0, len(g.rules))
	visited := make(map[TargetIdentity]int) // 0: unvisited, 1: visiting, 2: visited
	var path []TargetIdentity

	var visit func(u TargetIdentity) error
	visit = func(u TargetIdentity) error {
		visited[u] = 1
		path = append(path, u)

		rule := g.rules[u]
		for dep := range rule.Deps().All() {
			if _, exists := g.rules[dep]; !exists {
				return zerr.With(
					zerr.With(zerr.Wrap(ErrMissingDependency, "rule references unknown dependency"), "target", u.String()),
					"dependency", dep.String(),
				)
			}
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, id := range g.sortedTargets() {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *RuleGraph) sortedTargets() []TargetIdentity {
	ids := make([]TargetIdentity, 0, len(g.rules))
	for id := range g.rules {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CompareTargets)
	return ids
}

// buildCycleError constructs an error with cycle path metadata.
func (g *RuleGraph) buildCycleError(path []TargetIdentity, dep TargetIdentity) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "rule graph is not acyclic"), "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields rules in dependency order, dependencies first.
// It assumes Validate() has been called and returned nil.
func (g *RuleGraph) Walk() iter.Seq[*BuildRule] {
	return func(yield func(*BuildRule) bool) {
		for _, id := range g.executionOrder {
			if !yield(g.rules[id]) {
				return
			}
		}
	}
}
