package rows

import "fmt"

// EventKind classifies a list notification.
type EventKind int

const (
	Inserted EventKind = iota
	Changed
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes one mutation of a List. From is the previous index of a
// moved row and -1 otherwise.
type Event struct {
	Kind  EventKind
	Index int
	From  int
	ID    string
}

// Moved reports whether the event relocated a row.
func (e Event) Moved() bool {
	return e.Kind == Changed && e.From >= 0
}

func (e Event) String() string {
	if e.Moved() {
		return fmt.Sprintf("%s %s %d->%d", e.Kind, e.ID, e.From, e.Index)
	}
	return fmt.Sprintf("%s %s @%d", e.Kind, e.ID, e.Index)
}

// State is the lifecycle stage of a List.
type State int

const (
	Empty State = iota
	Populated
	Updated
	TornDown
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	case Updated:
		return "updated"
	case TornDown:
		return "torn down"
	default:
		return "unknown"
	}
}

// List is an ordered collection of rows with unique identities.
// It is not safe for concurrent use; callers mutate it from one goroutine.
type List struct {
	rows      []Row
	index     map[string]int
	state     State
	observers []func(Event)
}

// NewList returns an empty list.
func NewList() *List {
	return &List{index: make(map[string]int)}
}

// Observe registers fn to receive every event synchronously, in order.
func (l *List) Observe(fn func(Event)) {
	if l.state == TornDown || fn == nil {
		return
	}
	l.observers = append(l.observers, fn)
}

// State returns the lifecycle stage.
func (l *List) State() State { return l.state }

// Len returns the number of rows.
func (l *List) Len() int { return len(l.rows) }

// At returns the row at index i.
func (l *List) At(i int) Row { return l.rows[i] }

// IndexOf returns the index of the row with identity id.
func (l *List) IndexOf(id string) (int, bool) {
	i, ok := l.index[id]
	return i, ok
}

// Rows returns a copy of the rows in display order.
func (l *List) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Present brings batch on screen. The first call appends every row. Later
// calls place the batch contiguously, starting at the lowest index currently
// held by one of its rows (or at the end when none is present):
//
//   - a row not yet in the list is inserted;
//   - a row already at its target index is replaced, emitting Changed only
//     when its content differs;
//   - a row found elsewhere is moved to the target index and reported as a
//     single Changed event with From set.
//
// Rows outside the batch keep their relative order. A repeated identity in
// batch updates the row placed earlier in the same call.
//
// This differs from a plain append: a new row that arrives with rows already
// on screen joins its batch, so presenting (a, x) on [a b c] yields
// [a x b c]. Only a batch with no row on screen lands at the end.
func (l *List) Present(batch ...Row) []Event {
	if l.state == TornDown || len(batch) == 0 {
		return nil
	}

	target := len(l.rows)
	for _, r := range batch {
		if i, ok := l.index[r.RowID()]; ok && i < target {
			target = i
		}
	}

	var events []Event
	placed := make(map[string]bool, len(batch))
	for _, r := range batch {
		id := r.RowID()
		if placed[id] {
			if ev, ok := l.replace(l.index[id], r); ok {
				events = append(events, ev)
			}
			continue
		}
		placed[id] = true

		cur, ok := l.index[id]
		switch {
		case !ok:
			l.insertAt(target, r)
			events = append(events, l.emit(Event{Kind: Inserted, Index: target, From: -1, ID: id}))
		case cur == target:
			if ev, ok := l.replace(cur, r); ok {
				events = append(events, ev)
			}
		default:
			// Rows in [anchor, target) are already placed, so cur > target.
			l.removeAt(cur)
			l.insertAt(target, r)
			events = append(events, l.emit(Event{Kind: Changed, Index: target, From: cur, ID: id}))
		}
		target++
	}

	if l.state == Empty {
		l.state = Populated
	} else {
		l.state = Updated
	}
	return events
}

// Reconcile presents batch and then removes every row whose identity is not
// in batch, so the list ends up holding exactly batch in order.
func (l *List) Reconcile(batch ...Row) []Event {
	if l.state == TornDown {
		return nil
	}
	events := l.Present(batch...)
	keep := make(map[string]bool, len(batch))
	for _, r := range batch {
		keep[r.RowID()] = true
	}
	for i := len(l.rows) - 1; i >= 0; i-- {
		if id := l.rows[i].RowID(); !keep[id] {
			ev, _ := l.Remove(id)
			events = append(events, ev)
		}
	}
	return events
}

// Remove deletes the row with identity id and reports whether it was present.
func (l *List) Remove(id string) (Event, bool) {
	if l.state == TornDown {
		return Event{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return Event{}, false
	}
	l.removeAt(i)
	if l.state != Empty {
		l.state = Updated
	}
	return l.emit(Event{Kind: Removed, Index: i, From: -1, ID: id}), true
}

// Update replaces the content of an existing row without moving it. It
// reports false when the identity is absent or the content is unchanged.
func (l *List) Update(r Row) (Event, bool) {
	if l.state == TornDown {
		return Event{}, false
	}
	i, ok := l.index[r.RowID()]
	if !ok {
		return Event{}, false
	}
	ev, changed := l.replace(i, r)
	if changed {
		l.state = Updated
	}
	return ev, changed
}

// Close tears the list down. Later calls on the list are no-ops.
func (l *List) Close() {
	l.rows = nil
	l.index = nil
	l.observers = nil
	l.state = TornDown
}

func (l *List) replace(i int, r Row) (Event, bool) {
	if SameContent(l.rows[i], r) {
		return Event{}, false
	}
	l.rows[i] = r
	return l.emit(Event{Kind: Changed, Index: i, From: -1, ID: r.RowID()}), true
}

func (l *List) insertAt(i int, r Row) {
	l.rows = append(l.rows, nil)
	copy(l.rows[i+1:], l.rows[i:])
	l.rows[i] = r
	l.reindex(i)
}

func (l *List) removeAt(i int) {
	delete(l.index, l.rows[i].RowID())
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	l.reindex(i)
}

func (l *List) reindex(from int) {
	for j := from; j < len(l.rows); j++ {
		l.index[l.rows[j].RowID()] = j
	}
}

func (l *List) emit(ev Event) Event {
	for _, fn := range l.observers {
		fn(ev)
	}
	return ev
}
