package algorithms

import "github.com/san-kum/sortviz/internal/oplog"

// Bubble records a classic bubble sort. After each pass the element that
// bubbled to the end of the unsorted region is marked sorted.
func Bubble(a []int, b *oplog.Builder) {
	n := len(a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			b.Compare(j, j+1)
			if a[j] > a[j+1] {
				b.Swap(j, j+1)
				a[j], a[j+1] = a[j+1], a[j]
			}
		}
		b.MarkSorted(n - i - 1)
	}
}
