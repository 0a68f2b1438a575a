package client

import "sync"

// KeyMutex hands out one mutex per key so callers can serialize work on a
// single identity while distinct identities proceed concurrently. Mutexes
// are created lazily and kept for the process lifetime; the key space
// (active user ids) is small enough that no eviction is needed.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns the function releasing it.
func (km *KeyMutex) Lock(key string) (unlock func()) {
	km.mu.Lock()
	lock, ok := km.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		km.locks[key] = lock
	}
	km.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
