package repository

import (
	"sync"
	"time"
)

// Collection names carried by change events.
const (
	CollectionCustomers     = "customers"
	CollectionOrders        = "orders"
	CollectionGalleryAlbums = "gallery_albums"
	CollectionGalleryItems  = "gallery"
	CollectionSettings      = "settings"
)

type ChangeEvent struct {
	Collection string
	At         time.Time
}

type subscription struct {
	collection string
	fn         func(ChangeEvent)
}

// Notifier fans out one event per written collection. Consumers re-query on
// every event; the event carries no diff.
type Notifier struct {
	mu   sync.RWMutex
	next int
	subs map[int]subscription
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]subscription)}
}

// Subscribe registers fn for one collection, or for all when collection is "".
// The returned func removes the subscription.
func (n *Notifier) Subscribe(collection string, fn func(ChangeEvent)) func() {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = subscription{collection: collection, fn: fn}
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

func (n *Notifier) Publish(collection string) {
	if n == nil {
		return
	}
	ev := ChangeEvent{Collection: collection, At: time.Now().UTC()}
	n.mu.RLock()
	fns := make([]func(ChangeEvent), 0, len(n.subs))
	for _, s := range n.subs {
		if s.collection == "" || s.collection == collection {
			fns = append(fns, s.fn)
		}
	}
	n.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
