//go:build windows
// +build windows

/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package impl

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// SyscallReuseAddr sets SO_REUSEADDR on Windows.
func SyscallReuseAddr(network string, address string, c syscall.RawConn) error {
	var err error
	c.Control(func(fd uintptr) {
		err = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	return err
}
