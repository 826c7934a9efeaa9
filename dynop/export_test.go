package dynop

// BindCount reports how many times the process-wide bridge was built.
func BindCount() int64 {
	return binds.Load()
}

// ResetBridge forgets the process-wide bridge.
func ResetBridge() {
	bindMu.Lock()
	defer bindMu.Unlock()
	current.Store(nil)
	binds.Store(0)
}

// CachedMethods reports the number of cached method callables.
func (b *Bridge) CachedMethods() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.methods)
}
