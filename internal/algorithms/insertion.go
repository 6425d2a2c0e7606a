package algorithms

import "github.com/san-kum/sortviz/internal/oplog"

// Insertion records an insertion sort that shifts larger elements right
// with Set operations and finally writes the held key into the gap.
func Insertion(a []int, b *oplog.Builder) {
	n := len(a)
	for i := 1; i < n; i++ {
		key := a[i]
		j := i - 1
		b.Compare(j, i)
		for j >= 0 && a[j] > key {
			b.Set(j+1, a[j])
			a[j+1] = a[j]
			j--
			if j >= 0 {
				b.Compare(j, i)
			}
		}
		b.Set(j+1, key)
		a[j+1] = key
	}
}
