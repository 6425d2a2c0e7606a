package algorithms

import "github.com/san-kum/sortviz/internal/oplog"

// Quick records a quicksort using Lomuto partitioning around the last
// element of each range.
func Quick(a []int, b *oplog.Builder) {
	quickSort(a, 0, len(a)-1, b)
}

func quickSort(a []int, low, high int, b *oplog.Builder) {
	if low >= high {
		return
	}
	p := partition(a, low, high, b)
	quickSort(a, low, p-1, b)
	quickSort(a, p+1, high, b)
}

func partition(a []int, low, high int, b *oplog.Builder) int {
	pivot := a[high]
	i := low - 1
	for j := low; j < high; j++ {
		b.Compare(j, high)
		if a[j] <= pivot {
			i++
			b.Swap(i, j)
			a[i], a[j] = a[j], a[i]
		}
	}
	b.Swap(i+1, high)
	a[i+1], a[high] = a[high], a[i+1]
	return i + 1
}
