package todos

import (
	"context"
	"sync"
)

// List owns the locally cached todo collection the way a view would: an
// ordered slice plus loading and error state. Server responses are merged
// in; failures become the error string and never propagate as panics.
// Todos are not displayed optimistically: every mutation waits for the
// server before touching the collection.
type List struct {
	service *Service

	lock    sync.RWMutex
	items   []Todo
	loading bool
	err     string
}

func NewList(service *Service) *List {
	return &List{service: service}
}

// Fetch replaces the collection wholesale with the server's list. On
// failure the collection is left as it was and the error is recorded.
func (l *List) Fetch(ctx context.Context) error {
	l.setLoading(true)
	items, err := l.service.List(ctx)

	l.lock.Lock()
	defer l.lock.Unlock()
	l.loading = false
	if err != nil {
		l.err = err.Error()
		return err
	}
	l.items = items
	l.err = ""
	return nil
}

// Add creates a todo and appends it only after server confirmation. On
// failure the collection is not mutated.
func (l *List) Add(ctx context.Context, req CreateRequest) (*Todo, error) {
	created, err := l.service.Create(ctx, req)

	l.lock.Lock()
	defer l.lock.Unlock()
	if err != nil {
		l.err = err.Error()
		return nil, err
	}
	l.items = append(l.items, *created)
	l.err = ""
	return created, nil
}

// Update applies a partial update and replaces the matching entry with the
// server's representation. A response for an id no longer in the
// collection leaves it unchanged.
func (l *List) Update(ctx context.Context, id int64, req UpdateRequest) (*Todo, error) {
	updated, err := l.service.Update(ctx, id, req)
	l.merge(updated, err)
	return updated, err
}

// Toggle flips completion through the server and merges the result.
func (l *List) Toggle(ctx context.Context, id int64, completed bool) (*Todo, error) {
	updated, err := l.service.Toggle(ctx, id, completed)
	l.merge(updated, err)
	return updated, err
}

// Remove deletes the entry only after the server confirms.
func (l *List) Remove(ctx context.Context, id int64) error {
	err := l.service.Delete(ctx, id)

	l.lock.Lock()
	defer l.lock.Unlock()
	if err != nil {
		l.err = err.Error()
		return err
	}
	next := make([]Todo, 0, len(l.items))
	for _, item := range l.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	l.items = next
	l.err = ""
	return nil
}

// merge replaces the entry matching the server representation. No matching
// id is a silent no-op, not an error: the entry may have been removed while
// the request was in flight.
func (l *List) merge(updated *Todo, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if err != nil {
		l.err = err.Error()
		return
	}
	for i := range l.items {
		if l.items[i].ID == updated.ID {
			l.items[i] = *updated
			break
		}
	}
	l.err = ""
}

// Items returns a copy of the collection in server order.
func (l *List) Items() []Todo {
	l.lock.RLock()
	defer l.lock.RUnlock()
	items := make([]Todo, len(l.items))
	copy(items, l.items)
	return items
}

// Err returns the last recorded error message, empty when the last
// operation succeeded.
func (l *List) Err() string {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.err
}

// Loading reports whether a fetch is in flight.
func (l *List) Loading() bool {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.loading
}

func (l *List) setLoading(loading bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.loading = loading
	l.err = ""
}
