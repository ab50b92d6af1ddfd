package embed

import "sync"

// Lock is a shared page resource a fullscreen viewer holds while open.
// Acquire returns the function that gives it back; calling it more than once is safe.
type Lock interface {
	Acquire() (release func())
}

// ScrollLock is the page-wide scroll lock. It is reference counted so
// several fullscreen viewers can hold it, and the page scrolls again
// only after the last one lets go.
type ScrollLock struct {
	mu       sync.Mutex
	holders  int
	onChange func(delta, holders int)
}

// NewScrollLock creates an unlocked scroll lock. onChange, if set, is
// called with the change and the new holder count after every change.
func NewScrollLock(onChange func(delta, holders int)) *ScrollLock {
	return &ScrollLock{onChange: onChange}
}

// Acquire takes one hold on the lock
func (l *ScrollLock) Acquire() func() {
	l.adjust(1)
	var once sync.Once
	return func() {
		once.Do(func() { l.adjust(-1) })
	}
}

// Locked reports whether any viewer holds the lock
func (l *ScrollLock) Locked() bool {
	return l.Holders() > 0
}

// Holders returns the number of outstanding holds
func (l *ScrollLock) Holders() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders
}

func (l *ScrollLock) adjust(delta int) {
	l.mu.Lock()
	l.holders += delta
	n := l.holders
	l.mu.Unlock()
	if l.onChange != nil {
		l.onChange(delta, n)
	}
}
