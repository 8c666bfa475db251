// Package sockpair 提供控制通道使用的 Unix domain socket 对。
// 宿主进程保留一端，另一端的描述符编号通过环境变量传入被监禁的进程。
// 使用 SOCK_SEQPACKET 类型确保可靠的消息边界。
package sockpair

import (
	"fmt"
	"os"
	"syscall"
)

// New 创建一对相连的 Unix domain socket，返回原始文件描述符
// 两个描述符都带有 close-on-exec 标志，
// 需要跨 exec 传递的一端应由调用者自行清除该标志
func New() ([2]int, error) {
	fd, err := syscall.Socketpair(syscall.AF_UNIX, syscall.SOCK_SEQPACKET|syscall.SOCK_CLOEXEC, 0)
	if err != nil {
		return fd, fmt.Errorf("sockpair: failed to call socketpair %v", err)
	}
	return fd, nil
}

// NewFiles 创建一对相连的 Unix domain socket，包装为 os.File
// 返回的两个文件分别对应宿主端和受禁端
func NewFiles() (*os.File, *os.File, error) {
	fd, err := New()
	if err != nil {
		return nil, nil, err
	}

	host := os.NewFile(uintptr(fd[0]), "sockpair-host")
	if host == nil {
		syscall.Close(fd[0])
		syscall.Close(fd[1])
		return nil, nil, fmt.Errorf("sockpair: %d is not a valid fd", fd[0])
	}

	jail := os.NewFile(uintptr(fd[1]), "sockpair-jail")
	if jail == nil {
		host.Close()
		syscall.Close(fd[1])
		return nil, nil, fmt.Errorf("sockpair: %d is not a valid fd", fd[1])
	}

	return host, jail, nil
}
