package resize

// Listener receives the events of one drag gesture.
type Listener interface {
	Move(pos int)
	End()
}

// Source delivers pointer events to registered listeners. Listen returns a
// cancel func that unregisters the listener; calling it more than once is safe.
type Source interface {
	Listen(l Listener) (cancel func())
}

// Bus is an in-process Source fed by a UI event loop.
type Bus struct {
	next      int
	listeners map[int]Listener
	order     []int
}

func NewBus() *Bus {
	return &Bus{listeners: map[int]Listener{}}
}

func (b *Bus) Listen(l Listener) func() {
	if b.listeners == nil {
		b.listeners = map[int]Listener{}
	}
	id := b.next
	b.next++
	b.listeners[id] = l
	b.order = append(b.order, id)
	return func() { b.remove(id) }
}

func (b *Bus) remove(id int) {
	if _, ok := b.listeners[id]; !ok {
		return
	}
	delete(b.listeners, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len is the number of registered listeners.
func (b *Bus) Len() int { return len(b.listeners) }

// Move forwards a pointer position to every listener.
func (b *Bus) Move(pos int) {
	for _, l := range b.snapshot() {
		l.Move(pos)
	}
}

// End forwards pointer release.
func (b *Bus) End() {
	for _, l := range b.snapshot() {
		l.End()
	}
}

// Abandon ends every gesture, for when the pointer leaves the window or the
// program loses focus. Listeners that fail to unregister themselves on End are
// dropped anyway.
func (b *Bus) Abandon() {
	b.End()
	for id := range b.listeners {
		delete(b.listeners, id)
	}
	b.order = b.order[:0]
}

// Listeners may unregister while being dispatched to.
func (b *Bus) snapshot() []Listener {
	out := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		if l, ok := b.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
