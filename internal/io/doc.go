// Package ioutils provides file system utilities for wefunk-cue.
//
// This package contains functions for:
//   - File writing
//   - Directory creation
//   - Locking an output directory for the duration of a run
package ioutils
