package dynprop

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// Filter returns the descriptors whose names fuzzy-match pattern. Matches
// keep their display order rather than being ranked by score. An empty
// pattern matches everything.
func Filter(descs []*Descriptor, pattern string) []*Descriptor {
	if pattern == "" {
		return descs
	}
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name()
	}
	matches := fuzzy.Find(pattern, names)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	slices.Sort(idx)

	out := make([]*Descriptor, len(idx))
	for i, j := range idx {
		out[i] = descs[j]
	}
	return out
}
