//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"cmp"
	"slices"
)

//
// SETS AND SLICES
//

// ToSet - returns a blank map of a slice
func ToSet[T comparable](sl []T) map[T]struct{} {
	m := make(map[T]struct{})
	for i := 0; i < len(sl); i++ {
		m[sl[i]] = struct{}{}
	}
	return m
}

// StringMapKeysIntoSlice - convert map[string]T to []string
func StringMapKeysIntoSlice[T any](mp map[string]T) []string {
	sl := make([]string, len(mp))
	i := 0
	for k := range mp {
		sl[i] = k
		i += 1
	}
	return sl
}

// SortedKeys - the keys of a map in ascending order
func SortedKeys[T any](mp map[string]T) []string {
	sl := StringMapKeysIntoSlice(mp)
	slices.Sort(sl)
	return sl
}

// TopNByValue - the N keys with the largest values; ties go to the alphabetically earlier key
func TopNByValue[V cmp.Ordered](mp map[string]V, n int) []string {
	// map iteration order is random; the tiebreak keeps the output stable from run to run
	sl := StringMapKeysIntoSlice(mp)
	slices.SortFunc(sl, func(a, b string) int {
		if c := cmp.Compare(mp[b], mp[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if n >= 0 && n < len(sl) {
		sl = sl[:n]
	}
	return sl
}

// ArgSortDesc - the indices of fl ordered by descending value; ties keep their original order
func ArgSortDesc(fl []float64) []int {
	idx := make([]int, len(fl))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(fl[b], fl[a])
	})
	return idx
}

// ChunkSlice - turn a slice into a slice of slices of size N; thanks to https://stackoverflow.com/questions/35179656/slice-chunking-in-go
func ChunkSlice[T any](items []T, size int) (chunks [][]T) {
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[0:size:size])
	}
	return append(chunks, items)
}
