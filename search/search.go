// Package search implements binary search over sorted, randomly indexable
// sequences.
//
// Every function here assumes the sequence is non-decreasing under the
// ordering in use (natural ordering, or the supplied comparator). That is
// not checked. An unsorted sequence never causes an out of range access, but
// the results are meaningless.
package search

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// NotFound is the index returned alongside found == false by Search and
// SearchFunc.
const NotFound = -1

// Compare is the natural ordering of an ordered type, in the three-way form
// expected by SearchFunc and InsertionPointFunc.
func Compare[T constraints.Ordered](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Search returns the index of an element equal to target. If seq holds
// several equal elements, which of them is returned is unspecified.
func Search[T constraints.Ordered](seq []T, target T) (int, bool) {
	return SearchFunc(seq, target, Compare[T])
}

// SearchFunc is Search generalized to a target of a different type. cmp
// reports how elem orders relative to target: negative if elem < target,
// zero if equal, positive if elem > target.
func SearchFunc[T, U any](seq []T, target U, cmp func(elem T, target U) int) (int, bool) {
	i, found := bsearch(seq, target, cmp)
	if !found {
		return NotFound, false
	}
	return i, true
}

// InsertionPoint returns an index in [0, len(seq)] at which target can be
// inserted while keeping seq sorted. When equal elements exist, the index of
// one of them is returned.
func InsertionPoint[T constraints.Ordered](seq []T, target T) int {
	return InsertionPointFunc(seq, target, Compare[T])
}

// InsertionPointFunc is InsertionPoint with the ordering decided by cmp.
func InsertionPointFunc[T, U any](seq []T, target U, cmp func(elem T, target U) int) int {
	i, _ := bsearch(seq, target, cmp)
	return i
}

// bsearch runs the closed interval [low, high] search shared by every
// operation above. On a match it returns the matching index; otherwise low,
// which is where the "< target" and "> target" halves meet.
func bsearch[T, U any](seq []T, target U, cmp func(T, U) int) (int, bool) {
	low, high := 0, len(seq)-1
	for low <= high {
		mid := low + (high-low)/2
		c := cmp(seq[mid], target)
		if c == 0 {
			return mid, true
		} else if c < 0 {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return low, false
}

// BisectLeft returns the index of the first element that is greater than or
// equal to target, i.e. the leftmost insertion point.
func BisectLeft[T constraints.Ordered](seq []T, target T) int {
	return sort.Search(len(seq), func(i int) bool { return seq[i] >= target })
}

// BisectRight returns the index of the first element that is greater than
// target, i.e. the rightmost insertion point.
// https://stackoverflow.com/questions/29959506/is-there-a-go-analog-of-pythons-bisect-module
func BisectRight[T constraints.Ordered](seq []T, target T) int {
	return sort.Search(len(seq), func(i int) bool { return seq[i] > target })
}
