//go:build !linux

package main

import "os"

// isTerminal is only implemented on Linux; elsewhere the spinner decides.
func isTerminal(_ *os.File) bool {
	return true
}
