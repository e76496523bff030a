//go:build linux

package shm

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// waitOnValue blocks until *addr no longer equals want, the futex is
// woken, or timeout elapses. timeout < 0 waits forever. It returns false
// only when it can positively confirm a timeout occurred; spurious
// wakeups are handled by the caller re-checking the value.
func waitOnValue(addr *int32, want int32, timeout time.Duration) bool {
	var ts *unix.Timespec
	if timeout >= 0 {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}
	_, _, errno := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(unix.FUTEX_WAIT),
		uintptr(uint32(want)),
		uintptr(unsafe.Pointer(ts)),
		0, 0)
	return errno != unix.ETIMEDOUT
}

// wakeWaiters wakes up to n goroutines/processes blocked in waitOnValue
// on addr.
func wakeWaiters(addr *int32, n int32) {
	unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(unix.FUTEX_WAKE),
		uintptr(n),
		0, 0, 0)
}
