// Package flock guards the benchmark artifact against concurrent keysweep
// processes working in the same directory.
//
// The lock is an exclusive, non-blocking OS file lock on a sidecar file next
// to the artifact. It is released automatically when the process exits.
//
//	lock, err := flock.Acquire("./experiment.o.lock")
//	if err != nil {
//	    // errors.Is(err, errors.ErrLocked): another sweep is running
//	}
//	defer lock.Release()
package flock
