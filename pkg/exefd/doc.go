// Package exefd 提供"按描述符执行"的可执行映像支持。
// 可执行文件的内容被复制进一个匿名内存文件（memfd）并密封为只读，
// 之后通过 /proc/self/fd/N 形式的路径执行，
// 避免在沙箱文件系统中暴露真实的可执行文件。
//
// 要求 Linux 内核版本 >= 3.17
package exefd
