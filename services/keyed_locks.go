package services

import "sync"

// keyedLocks hands out one mutex per key, reference-counted so entries
// disappear as soon as the last holder releases them. It backs the
// per-pair critical section around conversation creation, where the
// storage engine alone cannot express the uniqueness constraint.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until the key's mutex is held and returns the release
// function. The zero value is ready to use.
func (kl *keyedLocks) lock(key string) func() {
	kl.mu.Lock()
	if kl.locks == nil {
		kl.locks = make(map[string]*keyedLock)
	}
	entry, ok := kl.locks[key]
	if !ok {
		entry = &keyedLock{}
		kl.locks[key] = entry
	}
	entry.refs++
	kl.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		kl.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(kl.locks, key)
		}
		kl.mu.Unlock()
	}
}
