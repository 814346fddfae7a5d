//go:build !(darwin || dragonfly || freebsd || netbsd || openbsd || linux)

package tty

// FlushStdinBuffer is a no-op on platforms without termios.
func FlushStdinBuffer() {}
