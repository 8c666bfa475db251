package hooks

import (
	"errors"
	"syscall"

	"github.com/zqzqsb/jailhooks/pkg/cstr"
)

// Syscall6 是通用按编号系统调用入口的替代实现
// execve / execveat 的调用号被汇入对应的具名包装，
// 防止参数改写被直接发起系统调用绕过；
// 其余调用号连同六个参数原样转交真实入口
//
// 无论请求哪个调用都固定读取六个参数转发，
// 真实参数个数在这里无法得知，多读的参数由真实入口忽略
// （沿用原始接口的已知不精确性，并非缺陷）
func (h *Hooks) Syscall6(num, a1, a2, a3, a4, a5, a6 uintptr) (uintptr, syscall.Errno) {
	switch num {
	case h.execve:
		return execResult(h.Execve(
			cstr.GoString(a1),
			cstr.GoStrings(a2),
			cstr.GoStrings(a3)))
	case h.execveat:
		return execResult(h.Execveat(
			int(a1),
			cstr.GoString(a2),
			cstr.GoStrings(a3),
			cstr.GoStrings(a4),
			int(a5)))
	}
	return h.d.Syscall6(num, a1, a2, a3, a4, a5, a6)
}

// execResult 将 exec 包装的返回值折算回系统调用的返回形式
// exec 成功时本不返回，返回值只在失败（或测试桩）时有意义
func execResult(err error) (uintptr, syscall.Errno) {
	if err == nil {
		return 0, 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return ^uintptr(0), errno
	}
	// 真实委托只产生 errno；非 errno 错误仅可能来自注入的测试桩
	return ^uintptr(0), syscall.EINVAL
}
