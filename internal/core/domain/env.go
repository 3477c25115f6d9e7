package domain

import (
	"maps"
	"slices"
)

// MergeEnvironment overlays environment layers in order; later layers win on key collision.
// The result is never nil.
func MergeEnvironment(layers ...map[string]string) map[string]string {
	res := make(map[string]string)
	for _, layer := range layers {
		maps.Copy(res, layer)
	}
	return res
}

// SortedEnvKeys returns the keys of an environment map in lexical order.
func SortedEnvKeys(env map[string]string) []string {
	return slices.Sorted(maps.Keys(env))
}
