package hooks

import (
	"errors"
	"runtime"
	"syscall"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

// vecArg 将字符串切片编码为 C 向量并返回其地址
// 返回的清理函数用来保住底层内存直到调用结束
func vecArg(t *testing.T, ss []string) (uintptr, func()) {
	t.Helper()
	vec, err := syscall.SlicePtrFromStrings(ss)
	if err != nil {
		t.Fatalf("SlicePtrFromStrings: %v", err)
	}
	return uintptr(unsafe.Pointer(&vec[0])), func() { runtime.KeepAlive(vec) }
}

// strArg 将字符串编码为 C 字符串并返回其地址
func strArg(t *testing.T, s string) (uintptr, func()) {
	t.Helper()
	p, err := syscall.BytePtrFromString(s)
	if err != nil {
		t.Fatalf("BytePtrFromString: %v", err)
	}
	return uintptr(unsafe.Pointer(p)), func() { runtime.KeepAlive(p) }
}

// TestSyscall6RoutesExecve 测试 execve 调用号被汇入具名包装并完成改写
func TestSyscall6RoutesExecve(t *testing.T) {
	d := stubDelegates()
	capture, calls := captureExec()
	d.Execveat = capture
	h := newTestHooks(t, d, Config{})

	path, keepPath := strArg(t, "/proc/self/fd/7")
	argv, keepArgv := vecArg(t, []string{"/proc/self/fd/7", "-c", "id"})
	envp, keepEnvp := vecArg(t, []string{"PATH=/bin", "HOME=/root"})
	defer keepPath()
	defer keepArgv()
	defer keepEnvp()

	r1, errno := h.Syscall6(unix.SYS_EXECVE, path, argv, envp, 0, 0, 0)
	if errno != 0 {
		t.Fatalf("Syscall6 errno = %v", errno)
	}
	if r1 != 0 {
		t.Errorf("r1 = %d, want 0", r1)
	}

	if len(*calls) != 1 {
		t.Fatalf("real execveat called %d times, want 1", len(*calls))
	}
	got := (*calls)[0]
	if got.dirfd != unix.AT_FDCWD || got.flags != 0 {
		t.Errorf("dirfd/flags = %d/%d, want AT_FDCWD/0", got.dirfd, got.flags)
	}
	if got.pathname != "/proc/self/fd/7" {
		t.Errorf("pathname = %q", got.pathname)
	}
	wantArgv := []string{"-bash", "-c", "id"}
	if len(got.argv) != len(wantArgv) {
		t.Fatalf("argv = %v, want %v", got.argv, wantArgv)
	}
	for i := range wantArgv {
		if got.argv[i] != wantArgv[i] {
			t.Errorf("argv[%d] = %q, want %q", i, got.argv[i], wantArgv[i])
		}
	}
	wantEnvp := []string{"PATH=/bin", "HOME=/root"}
	for i := range wantEnvp {
		if got.envp[i] != wantEnvp[i] {
			t.Errorf("envp[%d] = %q, want %q", i, got.envp[i], wantEnvp[i])
		}
	}
}

// TestSyscall6RoutesExecveat 测试 execveat 调用号带五个参数的汇入
func TestSyscall6RoutesExecveat(t *testing.T) {
	d := stubDelegates()
	capture, calls := captureExec()
	d.Execveat = capture
	h := newTestHooks(t, d, Config{})

	path, keepPath := strArg(t, "")
	argv, keepArgv := vecArg(t, []string{"/proc/self/fd/12"})
	envp, keepEnvp := vecArg(t, []string{"A=1"})
	defer keepPath()
	defer keepArgv()
	defer keepEnvp()

	_, errno := h.Syscall6(unix.SYS_EXECVEAT,
		12, path, argv, envp, unix.AT_EMPTY_PATH, 0)
	if errno != 0 {
		t.Fatalf("Syscall6 errno = %v", errno)
	}

	got := (*calls)[0]
	if got.dirfd != 12 {
		t.Errorf("dirfd = %d, want 12", got.dirfd)
	}
	if got.flags != unix.AT_EMPTY_PATH {
		t.Errorf("flags = %#x, want AT_EMPTY_PATH", got.flags)
	}
	if got.argv[0] != "-bash" {
		t.Errorf("argv[0] = %q, want %q", got.argv[0], "-bash")
	}
}

// TestSyscall6ExecveNullVectors 测试空指针向量不会引发越界访问
func TestSyscall6ExecveNullVectors(t *testing.T) {
	d := stubDelegates()
	capture, calls := captureExec()
	d.Execveat = capture
	h := newTestHooks(t, d, Config{})

	path, keep := strArg(t, "/bin/true")
	defer keep()

	// argv 和 envp 均为空指针
	_, errno := h.Syscall6(unix.SYS_EXECVE, path, 0, 0, 0, 0, 0)
	if errno != 0 {
		t.Fatalf("Syscall6 errno = %v", errno)
	}

	got := (*calls)[0]
	if len(got.argv) != 0 {
		t.Errorf("argv = %v, want empty", got.argv)
	}
}

// TestSyscall6Passthrough 测试其余调用号连同六个参数原样转发
func TestSyscall6Passthrough(t *testing.T) {
	type sysCall struct {
		num, a1, a2, a3, a4, a5, a6 uintptr
	}
	var calls []sysCall

	d := stubDelegates()
	d.Syscall6 = func(num, a1, a2, a3, a4, a5, a6 uintptr) (uintptr, syscall.Errno) {
		calls = append(calls, sysCall{num, a1, a2, a3, a4, a5, a6})
		return 42, 0
	}
	h := newTestHooks(t, d, Config{})

	r1, errno := h.Syscall6(unix.SYS_GETPID, 1, 2, 3, 4, 5, 6)
	if errno != 0 {
		t.Fatalf("Syscall6 errno = %v", errno)
	}
	if r1 != 42 {
		t.Errorf("r1 = %d, want 42", r1)
	}
	if len(calls) != 1 {
		t.Fatalf("real syscall called %d times, want 1", len(calls))
	}
	want := sysCall{unix.SYS_GETPID, 1, 2, 3, 4, 5, 6}
	if calls[0] != want {
		t.Errorf("real syscall got %+v, want %+v", calls[0], want)
	}
}

// TestSyscall6PassthroughErrno 测试转发路径上的失败原样返回
func TestSyscall6PassthroughErrno(t *testing.T) {
	d := stubDelegates()
	d.Syscall6 = func(num, a1, a2, a3, a4, a5, a6 uintptr) (uintptr, syscall.Errno) {
		return ^uintptr(0), syscall.EPERM
	}
	h := newTestHooks(t, d, Config{})

	r1, errno := h.Syscall6(unix.SYS_GETPID, 0, 0, 0, 0, 0, 0)
	if errno != syscall.EPERM {
		t.Errorf("errno = %v, want EPERM", errno)
	}
	if r1 != ^uintptr(0) {
		t.Errorf("r1 = %#x, want all-ones", r1)
	}
}

// TestSyscall6ExecErrno 测试汇入路径上 exec 失败折算回 errno 形式
func TestSyscall6ExecErrno(t *testing.T) {
	tests := []struct {
		name      string
		execErr   error
		wantErrno syscall.Errno
	}{
		{
			name:      "errno preserved",
			execErr:   syscall.EACCES,
			wantErrno: syscall.EACCES,
		},
		{
			name:      "non-errno error becomes EINVAL",
			execErr:   errors.New("stub failure"),
			wantErrno: syscall.EINVAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := stubDelegates()
			d.Execveat = func(dirfd int, pathname string, argv, envp []string, flags int) error {
				return tt.execErr
			}
			h := newTestHooks(t, d, Config{})

			path, keep := strArg(t, "/bin/true")
			defer keep()

			r1, errno := h.Syscall6(unix.SYS_EXECVE, path, 0, 0, 0, 0, 0)
			if errno != tt.wantErrno {
				t.Errorf("errno = %v, want %v", errno, tt.wantErrno)
			}
			if r1 != ^uintptr(0) {
				t.Errorf("r1 = %#x, want all-ones", r1)
			}
		})
	}
}
