package scene

type subscriber[T any] struct {
	id int
	fn func(T)
}

// observers calls every registered function in registration order.
type observers[T any] struct {
	next int
	subs []subscriber[T]
}

func (o *observers[T]) add(fn func(T)) func() {
	o.next++
	id := o.next
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *observers[T]) notify(v T) {
	// Subscribers may unsubscribe while being notified.
	subs := append([]subscriber[T](nil), o.subs...)
	for _, s := range subs {
		s.fn(v)
	}
}
