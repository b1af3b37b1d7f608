package search

// PivotIndex returns the pivot position for a working deck of the given
// length: the centre for odd lengths, the last card of the first half for
// even lengths. It returns -1 for an empty deck.
func PivotIndex(length int) int {
	if length <= 0 {
		return -1
	}
	if length%2 == 1 {
		return length / 2
	}
	return length/2 - 1
}
