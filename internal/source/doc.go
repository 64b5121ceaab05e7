// Package source converts between token indices and human positions.
//
// All functions are pure: they take a token sequence and a tab width and never
// retain either. Line numbers come from the line recorded on linebreak tokens,
// so offsets computed on rewritten token sequences still refer to original
// source lines.
package source
