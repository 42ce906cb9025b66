// Package listview holds the pure list transformations the dashboard views
// apply to already-loaded entity slices: partitioning on a selector field,
// building filter-option lists with counts, client-side text matching, and
// percentage stats. No function here performs I/O or mutates its input.
package listview

import "strings"

// All is the sentinel filter value that selects the whole list.
const All = "all"

// Partition returns the elements whose selector value equals target
// (case-sensitive, exact), preserving relative order. When target is All
// the input is returned as a fresh slice of the same elements.
func Partition[T any](items []T, key func(T) string, target string) []T {
	if target == All {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	var out []T
	for _, it := range items {
		if key(it) == target {
			out = append(out, it)
		}
	}
	return out
}

// Option is one entry of a filter control: a selectable value and the number
// of elements carrying it.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Options derives the distinct selector values in first-seen order, each
// with its count, prepended by a synthetic All option counting the whole
// list.
func Options[T any](items []T, key func(T) string, allLabel string) []Option {
	opts := []Option{{Value: All, Label: allLabel, Count: len(items)}}
	index := make(map[string]int)
	for _, it := range items {
		v := key(it)
		if i, ok := index[v]; ok {
			opts[i].Count++
			continue
		}
		opts = append(opts, Option{Value: v, Label: v, Count: 1})
		index[v] = len(opts) - 1
	}
	return opts
}

// MatchQuery reports whether the trimmed query is a case-insensitive
// substring of any of the given field values. An empty query matches
// everything; this is the client-side fallback used before a server-side
// search round trip.
func MatchQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the elements matching the predicate, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Rate returns part/total as a rounded percentage, 0 when total is 0.
func Rate(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
