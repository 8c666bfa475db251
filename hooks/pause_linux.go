package hooks

// Pause 是 pause 的替代实现
// 首个到达的调用者负责关闭两个缓存的描述符，
// 并发到达的其余调用者不等待关闭完成，直接转交真实的 pause
// 关闭失败不影响闩的状态，也不阻止转交
func (h *Hooks) Pause() error {
	if h.closed.CompareAndSwap(false, true) {
		_ = h.d.Close(h.c.SockFD)
		_ = h.d.Close(h.c.ExeFD)
	}
	return h.d.Pause()
}
