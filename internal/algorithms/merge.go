package algorithms

import "github.com/san-kum/sortviz/internal/oplog"

// Merge records a top-down merge sort over the whole slice.
func Merge(a []int, b *oplog.Builder) {
	mergeSort(a, 0, len(a)-1, b)
}

func mergeSort(a []int, l, r int, b *oplog.Builder) {
	if l >= r {
		return
	}
	m := l + (r-l)/2
	mergeSort(a, l, m, b)
	mergeSort(a, m+1, r, b)
	merge(a, l, m, r, b)
}

// merge compares positions in the original halves and writes placements
// left to right starting at l. Ties take from the left half, so the sort
// is stable.
func merge(a []int, l, m, r int, b *oplog.Builder) {
	left := append([]int(nil), a[l:m+1]...)
	right := append([]int(nil), a[m+1:r+1]...)

	i, j, k := 0, 0, l
	for i < len(left) && j < len(right) {
		b.Compare(l+i, m+1+j)
		if left[i] <= right[j] {
			b.Set(k, left[i])
			a[k] = left[i]
			i++
		} else {
			b.Set(k, right[j])
			a[k] = right[j]
			j++
		}
		k++
	}
	for ; i < len(left); i++ {
		b.Set(k, left[i])
		a[k] = left[i]
		k++
	}
	for ; j < len(right); j++ {
		b.Set(k, right[j])
		a[k] = right[j]
		k++
	}
}
