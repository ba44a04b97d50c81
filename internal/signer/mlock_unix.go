//go:build unix

package signer

import "golang.org/x/sys/unix"

// lockMemory pins key material so it cannot be swapped to disk. Failure
// is non-fatal: some environments cap RLIMIT_MEMLOCK at zero.
func lockMemory(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Mlock(b)
}

// unlockMemory releases a previous lock before the buffer is freed.
func unlockMemory(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Munlock(b)
}
