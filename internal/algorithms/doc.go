// Package algorithms implements instrumented sorts that record every
// comparison and mutation into an [oplog.Builder].
//
// Each sort works on a private copy of its input; the caller's slice is
// never touched. [Generate] is the single entry point: it copies the
// snapshot, runs the named sort, and seals the log with the terminal
// MarkSorted over every position.
//
// # Example
//
//	log, err := algorithms.Generate("quick", []int{5, 3, 1})
//	final, _ := log.Replay([]int{5, 3, 1}) // [1 3 5]
package algorithms
