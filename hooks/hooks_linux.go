package hooks

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/zqzqsb/jailhooks/pkg/sysnum"
)

// 描述符编号的环境变量名称
const (
	// EnvSockFD 控制通道描述符的环境变量
	EnvSockFD = "SOCK_FD"
	// EnvExeFD 可执行映像描述符的环境变量
	EnvExeFD = "EXE_FD"
)

// Delegates 持有每个被拦截操作的真实实现
// 所有字段都必须非空，New 会逐一检查
// 测试中可以整体替换为桩实现
type Delegates struct {
	// Pause 无限期等待信号
	Pause func() error

	// Mount 挂载系统调用
	Mount func(source, target, fstype string, flags uintptr, data string) error

	// Execveat 按目录描述符相对路径替换进程映像
	// 另外两个 exec 入口最终都汇入这里
	Execveat func(dirfd int, pathname string, argv, envp []string, flags int) error

	// Syscall6 通用的按编号系统调用入口
	// 无论请求哪个调用，固定读取六个参数转发
	Syscall6 func(num, a1, a2, a3, a4, a5, a6 uintptr) (uintptr, syscall.Errno)

	// Close 关闭描述符，仅被关闭闩使用
	Close func(fd int) error
}

// Config 持有从环境解析出的两个描述符编号
type Config struct {
	// SockFD 控制通道描述符，首次 pause 时关闭
	SockFD int
	// ExeFD 可执行映像描述符，同一时机关闭
	ExeFD int
}

// Hooks 是插桩层的进程级状态
// 除关闭闩之外，所有字段在构造后只读
type Hooks struct {
	d Delegates
	c Config

	// execve / execveat 在当前架构上的系统调用号，
	// 构造时按名称解析，供裸系统调用入口识别
	execve   uintptr
	execveat uintptr

	// closed 描述符关闭闩，只允许由未触发翻转到已触发一次
	closed atomic.Bool
}

// ConfigFromEnv 从环境变量读取两个必需的描述符编号
// 变量缺失、非数字或为负都视为配置错误
func ConfigFromEnv() (Config, error) {
	sock, err := fdFromEnv(EnvSockFD)
	if err != nil {
		return Config{}, err
	}
	exe, err := fdFromEnv(EnvExeFD)
	if err != nil {
		return Config{}, err
	}
	return Config{SockFD: sock, ExeFD: exe}, nil
}

// fdFromEnv 从单个环境变量解析描述符编号
func fdFromEnv(key string) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, fmt.Errorf("hooks: %s is not set", key)
	}
	fd, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("hooks: %s: %w", key, err)
	}
	if fd < 0 {
		return 0, fmt.Errorf("hooks: %s: invalid fd %d", key, fd)
	}
	return fd, nil
}

// New 构造插桩层
// 过程：
// 1. 检查每个真实委托均已绑定（对应符号解析失败的情形）
// 2. 按名称解析 execve / execveat 的系统调用号
// 任何一步失败都返回错误，不存在部分初始化的状态
func New(d Delegates, c Config) (*Hooks, error) {
	switch {
	case d.Pause == nil:
		return nil, fmt.Errorf("hooks: pause delegate is not bound")
	case d.Mount == nil:
		return nil, fmt.Errorf("hooks: mount delegate is not bound")
	case d.Execveat == nil:
		return nil, fmt.Errorf("hooks: execveat delegate is not bound")
	case d.Syscall6 == nil:
		return nil, fmt.Errorf("hooks: syscall delegate is not bound")
	case d.Close == nil:
		return nil, fmt.Errorf("hooks: close delegate is not bound")
	}

	execve, err := sysnum.Lookup("execve")
	if err != nil {
		return nil, fmt.Errorf("hooks: resolve execve: %w", err)
	}
	execveat, err := sysnum.Lookup("execveat")
	if err != nil {
		return nil, fmt.Errorf("hooks: resolve execveat: %w", err)
	}

	return &Hooks{
		d:        d,
		c:        c,
		execve:   uintptr(execve),
		execveat: uintptr(execveat),
	}, nil
}
