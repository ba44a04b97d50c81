//go:build !unix

package signer

// lockMemory is a no-op on platforms without mlock.
func lockMemory([]byte) {}

// unlockMemory is a no-op on platforms without mlock.
func unlockMemory([]byte) {}
