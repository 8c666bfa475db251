/*
Package hooks 实现一个注入在被监禁进程内部的调用插桩层，
在少量标准库入口的语义上做最小的改写，其余调用原样转交真实实现。

四个行为：

1. 初始化：
  - 绑定每个被拦截操作的真实实现（真实委托）
  - 从环境变量 SOCK_FD / EXE_FD 解析两个描述符编号
  - 任何一步失败都是致命的配置错误，进程以状态码 1 退出

2. 描述符关闭闩（pause 包装）：
  - 首次调用 pause 时关闭两个缓存的描述符，进程范围内恰好执行一次
  - 关闭失败直接忽略，随后无条件转交真实的 pause

3. 挂载过滤（mount 包装）：
  - 对 /dev/discord 上的 remount 请求直接返回成功而不执行
  - 其余挂载请求原样转交，结果不做任何加工

4. exec 参数改写（execveat / execve / execv 以及裸系统调用入口）：
  - argv[0] 以 /proc/self/fd/ 开头（按描述符执行）时，
    将 argv[0] 替换为 "-bash"，其余元素保持不变
  - 三个具名入口共用同一条改写路径；
    裸系统调用入口把 execve / execveat 调用号汇入同一条路径，
    防止改写被直接发起系统调用绕过

使用示例：

	h, err := hooks.New(hooks.RealDelegates(), config)
	if err != nil {
		// 配置错误
	}
	_ = h.Pause()

或者通过进程级单例（初始化失败时进程直接退出）：

	_ = hooks.Pause()
*/
package hooks
