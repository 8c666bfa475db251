package exefd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// 创建 memfd 的标志位组合：
// MFD_CLOEXEC: 在执行 exec 时自动关闭文件描述符
// MFD_ALLOW_SEALING: 允许对文件进行密封操作
const createFlag = unix.MFD_CLOEXEC | unix.MFD_ALLOW_SEALING

// 只读密封标志位组合：
// F_SEAL_SEAL: 防止进一步添加新的密封
// F_SEAL_SHRINK: 防止文件缩小
// F_SEAL_GROW: 防止文件增长
// F_SEAL_WRITE: 防止写入操作
const roSeal = unix.F_SEAL_SEAL | unix.F_SEAL_SHRINK | unix.F_SEAL_GROW | unix.F_SEAL_WRITE

// fdPathPrefix 按描述符寻址文件时使用的路径前缀
const fdPathPrefix = "/proc/self/fd/"

// Load 将 r 中的可执行映像载入一个密封为只读的 memfd
// 参数：
//   - name: 文件名（仅用于调试目的，出现在 /proc 中）
//   - r: 映像内容的来源
//
// 返回值：
//   - *os.File: 密封后的只读映像文件，文件指针位于开头
//   - error: 错误信息
//
// 注意：调用者需要负责关闭返回的文件
func Load(name string, r io.Reader) (*os.File, error) {
	fd, err := unix.MemfdCreate(name, createFlag)
	if err != nil {
		return nil, fmt.Errorf("exefd: memfd_create failed %v", err)
	}
	file := os.NewFile(uintptr(fd), name)
	if file == nil {
		unix.Close(fd)
		return nil, fmt.Errorf("exefd: NewFile failed for %v", name)
	}
	// 复制映像内容
	if _, err = file.ReadFrom(r); err != nil {
		file.Close()
		return nil, fmt.Errorf("exefd: read from %v", err)
	}
	// 密封为只读，之后内容无法再被修改
	if _, err = unix.FcntlInt(file.Fd(), unix.F_ADD_SEALS, roSeal); err != nil {
		file.Close()
		return nil, fmt.Errorf("exefd: memfd seal %v", err)
	}
	// 将文件指针重置到开始位置
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("exefd: file seek %v", err)
	}
	return file, nil
}

// Path 返回按描述符执行 f 时使用的路径
func Path(f *os.File) string {
	return FdPath(int(f.Fd()))
}

// FdPath 返回描述符 fd 对应的 /proc/self/fd 路径
func FdPath(fd int) string {
	return fdPathPrefix + strconv.Itoa(fd)
}
