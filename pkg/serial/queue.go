package serial

// Queue is a FIFO of values grouped by the Serial they were enqueued under.
// Values must be enqueued with non-decreasing serials; the queue relies on
// that ordering so reclaim walks are simple front evictions instead of
// searches.
//
// Queue is not safe for concurrent use.
type Queue[T any] struct {
	groups []group[T]
}

type group[T any] struct {
	serial Serial
	values []T
}

// Enqueue appends v under s. s must be greater than or equal to every
// serial previously passed to Enqueue on this queue; this is a caller
// contract and is not validated.
func (q *Queue[T]) Enqueue(v T, s Serial) {
	if n := len(q.groups); n > 0 && q.groups[n-1].serial == s {
		q.groups[n-1].values = append(q.groups[n-1].values, v)
		return
	}
	q.groups = append(q.groups, group[T]{serial: s, values: []T{v}})
}

// IterateUpTo calls fn for every value enqueued under a serial <= cutoff,
// oldest first. The values remain queued; pair with ClearUpTo to remove
// them.
func (q *Queue[T]) IterateUpTo(cutoff Serial, fn func(T)) {
	for _, g := range q.groups {
		if g.serial > cutoff {
			return
		}
		for _, v := range g.values {
			fn(v)
		}
	}
}

// ClearUpTo removes every value enqueued under a serial <= cutoff. A cutoff
// below the first pending serial is a no-op.
func (q *Queue[T]) ClearUpTo(cutoff Serial) {
	i := 0
	for i < len(q.groups) && q.groups[i].serial <= cutoff {
		i++
	}
	q.groups = q.groups[i:]
}

// IterateAll calls fn for every queued value, oldest first.
func (q *Queue[T]) IterateAll(fn func(T)) {
	for _, g := range q.groups {
		for _, v := range g.values {
			fn(v)
		}
	}
}

// Empty reports whether the queue holds no values.
func (q *Queue[T]) Empty() bool {
	return len(q.groups) == 0
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	n := 0
	for _, g := range q.groups {
		n += len(g.values)
	}
	return n
}

// FirstSerial returns the lowest serial that still has queued values, or
// zero when the queue is empty.
func (q *Queue[T]) FirstSerial() Serial {
	if len(q.groups) == 0 {
		return 0
	}
	return q.groups[0].serial
}
