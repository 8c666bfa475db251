// Package sysnum 提供按名称解析当前架构系统调用号的功能
package sysnum

import (
	"fmt"

	"github.com/elastic/go-seccomp-bpf/arch"
)

// GetInfo 获取当前系统架构的系统调用信息
// arch.GetInfo("") 返回当前系统架构（如 x86_64, arm64 等）的系统调用映射表
// info 包含了系统调用名称到系统调用号的映射关系
var info, errInfo = arch.GetInfo("")

// Lookup 将系统调用名称解析为当前架构上的系统调用号
// 参数：
//   - name: 系统调用名称（如 "execve", "execveat" 等）
//
// 返回值：
//   - int: 系统调用号
//   - error: 如果解析失败则返回错误
//
// 错误情况：
//   - 如果获取系统架构信息失败
//   - 如果该名称在当前架构上不存在对应的系统调用
func Lookup(name string) (int, error) {
	// 检查是否成功获取到系统架构信息
	if errInfo != nil {
		return 0, errInfo
	}

	// 在映射表中查找名称对应的系统调用号
	// info.SyscallNames 是一个 map[string]int，
	// 键是系统调用名称，值是系统调用号
	n, ok := info.SyscallNames[name]
	if !ok {
		return 0, fmt.Errorf("syscall %q does not exist", name)
	}

	return n, nil
}
