package algorithms

import "github.com/san-kum/sortviz/internal/oplog"

// Selection records a selection sort. Position i is marked sorted once the
// minimum of the remaining suffix has been swapped into it.
func Selection(a []int, b *oplog.Builder) {
	n := len(a)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			b.Compare(minIdx, j)
			if a[j] < a[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			b.Swap(i, minIdx)
			a[i], a[minIdx] = a[minIdx], a[i]
		}
		b.MarkSorted(i)
	}
}
