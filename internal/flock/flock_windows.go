//go:build windows

package flock

import "golang.org/x/sys/windows"

// LockFileEx parameters: reserved must be zero, and a one-byte range at
// offset zero is enough to make the lock exclusive.
const (
	lockReserved  = 0
	lockBytesLow  = 1
	lockBytesHigh = 0
)

func exclusive(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

func unlock(fd uintptr) error {
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}
