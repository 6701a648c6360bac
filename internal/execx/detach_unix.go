//go:build !windows

package execx

import (
	"syscall"
)

// detachedProcAttr puts the child in its own session so it survives the
// parent exiting.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
