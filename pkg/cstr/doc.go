// Package cstr 提供从进程内地址解码 C 风格字符串和字符串向量的功能。
// 原始系统调用接口以裸指针形式传递 execve 的参数
// （以 NUL 结尾的字符串、以空指针结尾的指针数组），
// 在转交给 Go 层处理之前需要先还原为 Go 字符串。
//
// 编码方向（Go 字符串转 C 向量）由标准库的
// syscall.BytePtrFromString / syscall.SlicePtrFromStrings 提供，
// 本包不再重复实现。
//
// 注意：本包只能解码当前进程地址空间内的地址，
// 地址必须来源于系统调用参数这类外部传入的裸指针。
package cstr
