package cstr

import (
	"unsafe"
)

// ptrSize 当前平台上指针的字节数
const ptrSize = unsafe.Sizeof(uintptr(0))

// GoString 从进程内地址 p 读取一个以 NUL 结尾的 C 字符串
// 参数:
//   - p: 字符串首字节的地址，必须指向当前进程内有效的内存
//
// 返回值:
//   - string: 解码后的 Go 字符串（内容被复制，不引用原内存）
//
// 特殊情况: p 为 0（空指针）时返回空字符串
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	// 先找到 NUL 终止符确定长度
	n := 0
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	// string 转换会复制底层字节，之后不再依赖原地址
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

// GoStrings 从进程内地址 vec 读取一个以空指针结尾的 C 字符串数组
// 这是 execve 系统调用中 argv / envp 参数的内存布局
// 参数:
//   - vec: 指针数组首元素的地址
//
// 返回值:
//   - []string: 解码后的字符串切片
//
// 特殊情况:
//   - vec 为 0（空指针）时返回 nil
//   - 数组首元素即为空指针（空向量）时返回长度为 0 的非 nil 切片，
//     以便调用方区分"没有数组"和"空数组"
func GoStrings(vec uintptr) []string {
	if vec == 0 {
		return nil
	}
	ss := make([]string, 0, 4)
	for i := uintptr(0); ; i++ {
		p := *(*uintptr)(unsafe.Pointer(vec + i*ptrSize))
		if p == 0 {
			break
		}
		ss = append(ss, GoString(p))
	}
	return ss
}
