// Package sorting implements the sorting strategies measured by algobench.
//
// Every registered strategy is pure: it returns a new ascending slice and
// leaves its input untouched. Bubble and merge sort are built on in-place
// kernels (BubbleInPlace, MergeInPlace) that sort a copy. SortOwned runs a
// kernel directly on a buffer the caller already owns, so a timed run
// measures the sort without the defensive copy.
package sorting

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownStrategy is returned by Lookup for names outside the registry.
var ErrUnknownStrategy = errors.New("sorting: unknown strategy")

// Strategy names.
const (
	NameBubble   = "bubble"
	NameMerge    = "merge"
	NameQuick    = "quick"
	NameBaseline = "baseline"
)

// Func sorts xs ascending and returns the result.
type Func func(xs []int) []int

// Strategy is a named sorting algorithm.
type Strategy struct {
	Name string
	Sort Func
	// InPlace is the mutating kernel behind Sort, or nil when the
	// algorithm builds new slices while it recurses.
	InPlace func(xs []int)
}

var registry = []Strategy{
	{Name: NameBubble, Sort: Bubble, InPlace: BubbleInPlace},
	{Name: NameMerge, Sort: Merge, InPlace: MergeInPlace},
	{Name: NameQuick, Sort: Quick},
	{Name: NameBaseline, Sort: Baseline},
}

// Names returns the strategy names in registry order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name
	}
	return names
}

// Strategies returns a copy of the registry.
func Strategies() []Strategy {
	return slices.Clone(registry)
}

// SortOwned sorts xs, which the caller hands over, and returns the result.
// Strategies with an in-place kernel sort xs itself and return it.
func (s Strategy) SortOwned(xs []int) []int {
	if s.InPlace != nil {
		s.InPlace(xs)
		return xs
	}
	return s.Sort(xs)
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, error) {
	for _, s := range registry {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Bubble returns a sorted copy of xs using bubble sort.
func Bubble(xs []int) []int {
	out := slices.Clone(xs)
	BubbleInPlace(out)
	return out
}

// BubbleInPlace sorts xs with adjacent swaps. Each pass bubbles the largest
// remaining element to the end of the unsorted suffix; a pass without swaps
// ends the sort early.
func BubbleInPlace(xs []int) {
	n := len(xs)
	for i := 0; i < n; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if xs[j] > xs[j+1] {
				xs[j], xs[j+1] = xs[j+1], xs[j]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// Merge returns a sorted copy of xs using top-down merge sort.
func Merge(xs []int) []int {
	out := slices.Clone(xs)
	MergeInPlace(out)
	return out
}

// MergeInPlace sorts xs with a stable top-down merge sort. A single scratch
// buffer of len(xs) is shared by every merge.
func MergeInPlace(xs []int) {
	if len(xs) <= 1 {
		return
	}
	scratch := make([]int, len(xs))
	mergeSort(xs, scratch)
}

func mergeSort(xs, scratch []int) {
	if len(xs) <= 1 {
		return
	}
	mid := len(xs) / 2
	mergeSort(xs[:mid], scratch[:mid])
	mergeSort(xs[mid:], scratch[mid:])
	merge(xs, mid, scratch)
}

// merge interleaves the sorted halves xs[:mid] and xs[mid:] back into xs.
// On ties the left element wins, which keeps the sort stable.
func merge(xs []int, mid int, scratch []int) {
	copy(scratch, xs)
	left, right := scratch[:mid], scratch[mid:len(xs)]

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			xs[k] = left[i]
			i++
		} else {
			xs[k] = right[j]
			j++
		}
		k++
	}
	k += copy(xs[k:], left[i:])
	copy(xs[k:], right[j:])
}

// Quick returns a sorted copy of xs. The middle element is the pivot; the
// input is partitioned into new less/equal/greater slices which are
// recursively sorted and concatenated.
func Quick(xs []int) []int {
	if len(xs) <= 1 {
		return slices.Clone(xs)
	}
	pivot := xs[len(xs)/2]

	var less, equal, greater []int
	for _, x := range xs {
		switch {
		case x < pivot:
			less = append(less, x)
		case x > pivot:
			greater = append(greater, x)
		default:
			equal = append(equal, x)
		}
	}

	out := make([]int, 0, len(xs))
	out = append(out, Quick(less)...)
	out = append(out, equal...)
	out = append(out, Quick(greater)...)
	return out
}

// Baseline returns a sorted copy of xs using the standard library sort.
func Baseline(xs []int) []int {
	out := slices.Clone(xs)
	slices.Sort(out)
	return out
}
