package codec

// BuildCount reports how many times the process-wide registry was built.
func BuildCount() int64 {
	return builds.Load()
}

// ResetGlobal forgets the process-wide registry.
func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global.Store(nil)
	builds.Store(0)
}
