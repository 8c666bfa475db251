package hooks

import (
	"golang.org/x/sys/unix"
)

// uploadDevice 上传设备节点的路径
// 受禁进程会尝试对它执行 remount，该请求需要被静默吞掉
const uploadDevice = "/dev/discord"

// Mount 是 mount 的替代实现
// 命中上传设备的 remount 模式时直接返回成功而不调用真实实现，
// 其余请求原样转交，真实实现的结果（包括失败）不做任何加工
func (h *Hooks) Mount(source, target, fstype string, flags uintptr, data string) error {
	if isUploadRemount(source, target, fstype, flags) {
		return nil
	}
	return h.d.Mount(source, target, fstype, flags, data)
}

// isUploadRemount 判断一次挂载请求是否为上传设备的 remount
// 四个条件必须同时成立：
// 源和目标都是上传设备节点、未指定文件系统类型、带有 MS_REMOUNT 标志位
// （其余标志位不参与匹配）
func isUploadRemount(source, target, fstype string, flags uintptr) bool {
	return source == uploadDevice &&
		target == uploadDevice &&
		fstype == "" &&
		flags&unix.MS_REMOUNT != 0
}
