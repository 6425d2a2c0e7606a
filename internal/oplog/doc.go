// Package oplog defines the elementary operations a sort performs and the
// immutable log that records them.
//
// The operation set is closed:
//
//   - [Compare]: two positions were inspected, nothing changed
//   - [Swap]: two positions exchanged values
//   - [Set]: one or more positions were overwritten
//   - [MarkSorted]: positions reached their final order
//
// Consumers dispatch with a type switch over [Op]; the unexported marker
// method keeps other packages from adding variants.
//
// # Thread Safety
//
// A [Log] is read-only once built and may be shared freely. A [Builder] is
// not safe for concurrent use.
package oplog
