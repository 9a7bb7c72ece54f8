package repository

import "sync"

// keyedLocks serializes mutations per aggregate (one student, one campaign)
// so derived roll-up fields never race. Cross-aggregate operations stay
// parallel.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// studentLocks guards the attendance, homework and fee ledgers of a single
// student.
var studentLocks = newKeyedLocks()
