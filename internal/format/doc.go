// Package format is the fixed-point rewrite engine. It runs an ordered rule
// set against a token buffer pass after pass until a pass leaves the buffer
// untouched, then reports which original lines changed and why.
//
// Each rule runs on its own goroutine under a deadline. A rule that misses
// its deadline fails the run; the goroutine is abandoned together with the
// pass buffer, which nothing reads again. Format and Lint never return a
// partially rewritten token sequence alongside an error.
package format
