package schedule

import (
	"sync"

	"github.com/propview/viewing-scheduler/internal/ident"
)

// Locks linearizes writers. Availability mutations and bookings against one
// house take that house's mutex; bookings additionally take bookMu because
// the overlap guard reads appointments across every house.
//
// One instance is shared by all scheduling use cases. The house map only
// grows, one mutex per house id ever written to; entries are a few dozen
// bytes and the listing catalog bounds the count, so idle entries are not
// reaped.
type Locks struct {
	mu     sync.Mutex
	houses map[string]*sync.Mutex

	bookMu sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{houses: make(map[string]*sync.Mutex)}
}

// LockHouse acquires the mutex for one house and returns its unlock.
func (l *Locks) LockHouse(houseID []byte) func() {
	key := ident.String(houseID)

	l.mu.Lock()
	m, ok := l.houses[key]
	if !ok {
		m = &sync.Mutex{}
		l.houses[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// LockBooking serializes the global overlap check + insert.
func (l *Locks) LockBooking() func() {
	l.bookMu.Lock()
	return l.bookMu.Unlock
}
