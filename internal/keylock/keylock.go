// Package keylock выдаёт мьютекс на строковый ключ.
// Запись удаляется, когда её больше никто не держит и не ждёт.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker набор мьютексов по ключу
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New создаёт пустой Locker
func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

// Lock захватывает мьютекс ключа и возвращает функцию освобождения
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}

// Len количество ключей, которые сейчас заняты или ожидаются
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
