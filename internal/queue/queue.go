// Package queue provides an unbounded FIFO channel.
package queue

// Queue forwards every value written to In to Out in order. Writers are never
// held up by a slow reader: values are parked in a slice until Out is drained.
type Queue[T any] struct {
	in  chan T
	out chan T
}

// New starts the forwarding goroutine. It exits once In is closed and every
// buffered value has been delivered, at which point Out is closed.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go q.forward()
	return q
}

func (q *Queue[T]) In() chan<- T {
	return q.in
}

func (q *Queue[T]) Out() <-chan T {
	return q.out
}

func (q *Queue[T]) forward() {
	defer close(q.out)

	var pending []T
	in := q.in
	for in != nil || len(pending) > 0 {
		// A nil channel disables its case, so Out is only offered a value
		// when one is waiting.
		var out chan T
		var next T
		if len(pending) > 0 {
			out = q.out
			next = pending[0]
		}

		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, v)
		case out <- next:
			var zero T
			pending[0] = zero
			pending = pending[1:]
		}
	}
}
