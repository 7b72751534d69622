// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package catalog

import "sort"

// Vocabulary is the fixed, sorted, deduplicated list of genre labels across
// the catalog with a stable label to index mapping. It is built once during
// catalog construction and never mutated afterward; every genre vector in the
// system (movie and user) shares its indexing.
type Vocabulary struct {
	labels []string
	index  map[string]int
}

// newVocabulary builds a vocabulary from a set of genre labels. The sorted
// union guarantees identical ordering regardless of input record order.
func newVocabulary(labels map[string]struct{}) *Vocabulary {
	sorted := make([]string, 0, len(labels))
	for label := range labels {
		sorted = append(sorted, label)
	}
	sort.Strings(sorted)

	index := make(map[string]int, len(sorted))
	for i, label := range sorted {
		index[label] = i
	}

	return &Vocabulary{labels: sorted, index: index}
}

// Len returns the number of genre labels.
func (v *Vocabulary) Len() int {
	return len(v.labels)
}

// Index returns the dense index of a genre label.
func (v *Vocabulary) Index(label string) (int, bool) {
	i, ok := v.index[label]
	return i, ok
}

// Label returns the genre label at the given index.
// It panics if i is out of range, matching slice semantics.
func (v *Vocabulary) Label(i int) string {
	return v.labels[i]
}

// Labels returns a copy of the ordered genre labels.
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}
