// Package buffer owns the mutable token sequence that rules rewrite.
//
// A Buffer is private to one pass of one engine run and is written by a
// single rule at a time. Every mutation invalidates every index obtained
// before it: rules must search again after each edit. The only index the
// buffer repairs itself is the cursor of an in-progress ForEach.
//
// Mutations are recorded as Change values, attributed to the rule set with
// Begin and to the original source line of the edit. Recording is skipped
// when tracking is off or when the line lies outside the restricted range.
package buffer
