// The sliceutils package implements set operations on slices, which are much
// faster than converting to sets for the sizes found in a ranking.
package sliceutils

import (
	"cmp"
	"slices"
)

/*
returns the difference between slice1 and slice2; in set notation:

- difference = slice1 - slice2

Time complexity O(n * logn + m * logm), where n and m are the lengths of the slices.
The input slices are not modified.
*/
func Difference[T cmp.Ordered](slice1, slice2 []T) []T {
	removed, _, _ := Partition(slice1, slice2)
	return removed
}

/*
returns removed, common and added elements, using set notation:

removed = slice1 - slice2
common = slice1 ^ slice2
added = slice2 - slice1

Time complexity O(n * logn + m * logm), where n and m are the lengths of the slices.
The input slices are not modified; the results are sorted.
*/
func Partition[T cmp.Ordered](slice1, slice2 []T) ([]T, []T, []T) {

	// Sort copies of both slices first
	sorted1 := slices.Clone(slice1)
	sorted2 := slices.Clone(slice2)
	slices.Sort(sorted1)
	slices.Sort(sorted2)

	removed := []T{}
	common := []T{}
	added := []T{}

	i, j := 0, 0
	len1, len2 := len(sorted1), len(sorted2)

	// Use two pointers to compare both sorted lists
	for i < len1 && j < len2 {

		if sorted1[i] < sorted2[j] {
			// not in slice2, so it was removed
			removed = append(removed, sorted1[i])
			i++

		} else if sorted1[i] > sorted2[j] {
			// not in slice1, so it was added
			added = append(added, sorted2[j])
			j++

		} else {
			common = append(common, sorted1[i])
			i++
			j++
		}
	}

	// Add all elements not traversed
	removed = append(removed, sorted1[i:]...)
	added = append(added, sorted2[j:]...)

	return removed, common, added
}
