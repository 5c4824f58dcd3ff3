// Package progress models the simulated delivery pipeline: the fixed ordered
// step sequence with its display data and ETA table, and the Progress
// aggregate tracking one active order's step index, step fraction, published
// ETA, and interpolated actor position.
//
// The aggregate holds the pipeline invariants; serialization of concurrent
// ticks belongs to its single owner, the OrderProgressEngine service.
package progress
