//go:build !windows

package main

// HandleServiceCommand is a no-op on non-Windows platforms. Returns false so
// the application runs normally.
func HandleServiceCommand(args []string) bool {
	return false
}
