// Package tetris implements the rules of a single-player falling-block
// puzzle: a bounded grid, seven tetromino shapes drawn from shuffled bags,
// rotation with column kicks, a hold slot, gravity that speeds up with the
// level, and a timed line-clear phase.
//
// A Game is driven by three kinds of calls: lifecycle transitions (Start,
// Pause, Resume, Reset), player actions through HandleInput, and elapsed
// time through Tick. Each tick runs a small scheduler of systems in a fixed
// order. Observers receive Events after every call that changes state, and
// Snapshot returns a deep copy for renderers.
//
// The package does no I/O. Runner adapts wall-clock time and an input
// channel to the Tick and HandleInput calls.
package tetris
