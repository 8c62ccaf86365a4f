// Package buffer provides the reusable float64 buffer type and pool that the
// reverb engine uses for its transient working storage.
//
// Recursive filter stages need a working buffer that is longer than their
// input by the stage delay. Allocating those per stage and per run dominates
// the garbage produced by a long render, so the engine borrows them from a
// Pool and returns them as soon as the stage output has been copied out.
// Buffers handed out by a Pool are always zero-filled.
package buffer
