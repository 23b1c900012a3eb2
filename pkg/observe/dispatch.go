package observe

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to deliver asynchronous
// notifications on the UI turn. The host loop should call this once during
// initialization. Pass nil to clear it.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// dispatch delivers a callback through the registered dispatch function.
// Without a registered function the callback runs inline on the calling
// goroutine; hosts with a real UI thread must register a dispatcher.
func dispatch(callback func()) {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if callback == nil {
		return
	}
	if fn == nil {
		callback()
		return
	}
	fn(callback)
}
