package hooks

import (
	"os"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// RealDelegates 将每个委托绑定到真实的内核入口
func RealDelegates() Delegates {
	return Delegates{
		Pause:    unix.Pause,
		Mount:    unix.Mount,
		Execveat: realExecveat,
		Syscall6: realSyscall6,
		Close:    unix.Close,
	}
}

// realExecveat 通过裸系统调用执行 execveat
// 参数向量先转换为 C 风格的以空指针结尾的数组
// 成功时不返回；失败时返回对应的 errno
func realExecveat(dirfd int, pathname string, argv, envp []string, flags int) error {
	p, err := syscall.BytePtrFromString(pathname)
	if err != nil {
		return err
	}
	argvp, err := syscall.SlicePtrFromStrings(argv)
	if err != nil {
		return err
	}
	envpp, err := syscall.SlicePtrFromStrings(envp)
	if err != nil {
		return err
	}
	_, _, errno := unix.Syscall6(unix.SYS_EXECVEAT,
		uintptr(dirfd),
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&argvp[0])),
		uintptr(unsafe.Pointer(&envpp[0])),
		uintptr(flags),
		0)
	return errno
}

// realSyscall6 转发到通用系统调用入口
func realSyscall6(num, a1, a2, a3, a4, a5, a6 uintptr) (uintptr, syscall.Errno) {
	r1, _, errno := unix.Syscall6(num, a1, a2, a3, a4, a5, a6)
	return r1, errno
}

var (
	defaultOnce  sync.Once
	defaultHooks *Hooks
)

// Default 返回进程级的插桩层单例
// 首次调用时完成初始化：绑定真实委托并从环境读取描述符编号
// 初始化失败没有降级模式，进程以状态码 1 退出
func Default() *Hooks {
	defaultOnce.Do(func() {
		c, err := ConfigFromEnv()
		if err != nil {
			os.Exit(1)
		}
		h, err := New(RealDelegates(), c)
		if err != nil {
			os.Exit(1)
		}
		defaultHooks = h
	})
	return defaultHooks
}

// 以下包级函数是 Default 单例上各包装的便捷入口

// Pause 见 (*Hooks).Pause
func Pause() error { return Default().Pause() }

// Mount 见 (*Hooks).Mount
func Mount(source, target, fstype string, flags uintptr, data string) error {
	return Default().Mount(source, target, fstype, flags, data)
}

// Execveat 见 (*Hooks).Execveat
func Execveat(dirfd int, pathname string, argv, envp []string, flags int) error {
	return Default().Execveat(dirfd, pathname, argv, envp, flags)
}

// Execve 见 (*Hooks).Execve
func Execve(pathname string, argv, envp []string) error {
	return Default().Execve(pathname, argv, envp)
}

// Execv 见 (*Hooks).Execv
func Execv(pathname string, argv []string) error {
	return Default().Execv(pathname, argv)
}

// Syscall6 见 (*Hooks).Syscall6
func Syscall6(num, a1, a2, a3, a4, a5, a6 uintptr) (uintptr, syscall.Errno) {
	return Default().Syscall6(num, a1, a2, a3, a4, a5, a6)
}
