package hooks

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	// fdPathPrefix 按描述符执行时 argv[0] 携带的路径前缀
	fdPathPrefix = "/proc/self/fd/"

	// loginArgv0 改写后的 argv[0]
	// 以 "-" 开头使被执行的 bash 以登录 shell 的方式启动
	loginArgv0 = "-bash"
)

// Execveat 是 execveat 的替代实现
// argv[0] 以描述符路径前缀开头时，用改写后的参数向量转交真实实现，
// 否则参数向量原样转交
func (h *Hooks) Execveat(dirfd int, pathname string, argv, envp []string, flags int) error {
	return h.d.Execveat(dirfd, pathname, rewriteArgv(argv), envp, flags)
}

// Execve 是 execve 的替代实现
// 按相对当前目录、无额外标志的 execveat 定义，与之共用改写路径
func (h *Hooks) Execve(pathname string, argv, envp []string) error {
	return h.Execveat(unix.AT_FDCWD, pathname, argv, envp, 0)
}

// Execv 是 execv 的替代实现，继承当前进程的环境
func (h *Hooks) Execv(pathname string, argv []string) error {
	return h.Execve(pathname, argv, os.Environ())
}

// rewriteArgv 对参数向量应用 argv[0] 改写规则
// 命中时返回一个同长度的新向量：
// 首元素替换为 loginArgv0，其余元素原样复制，调用者的向量不被修改
// 未命中（包括空向量）时原样返回输入
func rewriteArgv(argv []string) []string {
	if len(argv) == 0 || !strings.HasPrefix(argv[0], fdPathPrefix) {
		return argv
	}
	rewritten := make([]string, len(argv))
	rewritten[0] = loginArgv0
	copy(rewritten[1:], argv[1:])
	return rewritten
}
