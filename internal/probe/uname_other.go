//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package probe

import "runtime"

func uname() Kernel {
	return Kernel{Sysname: runtime.GOOS, Machine: runtime.GOARCH}
}
