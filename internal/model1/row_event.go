package model1

import (
	"sort"
)

// RowEvent tracks resource instance events
type RowEvent struct {
	Kind   ResEvent
	Row    Row
	Deltas DeltaRow
}

func NewRowEvent(kind ResEvent, row Row) RowEvent {
	return RowEvent{
		Kind: kind,
		Row:  row,
	}
}

func NewRowEventWithDeltas(row Row, delta DeltaRow) RowEvent {
	return RowEvent{
		Kind:   EventUpdate,
		Row:    row,
		Deltas: delta,
	}
}

func (r RowEvent) Clone() RowEvent {
	return RowEvent{
		Kind:   r.Kind,
		Row:    r.Row.Clone(),
		Deltas: r.Deltas.Clone(),
	}
}

// RowEvents a collection of row events
type RowEvents struct {
	events []RowEvent
	index  map[string]int
}

func NewRowEvents(size int) *RowEvents {
	return &RowEvents{
		events: make([]RowEvent, 0, size),
		index:  make(map[string]int, size),
	}
}

func (r *RowEvents) reindex() {
	for i, e := range r.events {
		r.index[e.Row.ID] = i
	}
}

func (r *RowEvents) At(i int) (RowEvent, bool) {
	if i < 0 || i >= len(r.events) {
		return RowEvent{}, false
	}
	return r.events[i], true
}

func (r *RowEvents) Add(re RowEvent) {
	r.events = append(r.events, re)
	r.index[re.Row.ID] = len(r.events) - 1
}

func (r *RowEvents) Empty() bool {
	return len(r.events) == 0
}

func (r *RowEvents) Get(id string) (RowEvent, bool) {
	i, ok := r.index[id]
	if !ok {
		return RowEvent{}, false
	}
	return r.At(i)
}

func (r *RowEvents) Clone() *RowEvents {
	re := make([]RowEvent, 0, len(r.events))
	for _, e := range r.events {
		re = append(re, e.Clone())
	}
	out := NewRowEvents(len(re))
	for _, e := range re {
		out.Add(e)
	}
	return out
}

func (r *RowEvents) Range(f func(int, RowEvent) bool) {
	for i, e := range r.events {
		if !f(i, e) {
			return
		}
	}
}

// Count returns the number of events.
func (r *RowEvents) Count() int {
	return len(r.events)
}

// Sort orders the events by the given column index.
func (r *RowEvents) Sort(col int, isDuration, isNumber, ascending bool) {
	sort.SliceStable(r.events, func(i, j int) bool {
		f1, f2 := r.events[i].Row.Fields, r.events[j].Row.Fields
		v1, v2 := "", ""
		if col < len(f1) {
			v1 = f1[col]
		}
		if col < len(f2) {
			v2 = f2[col]
		}
		less := Less(isNumber, isDuration, r.events[i].Row.ID, r.events[j].Row.ID, v1, v2)
		if ascending {
			return less
		}
		return !less
	})
	r.reindex()
}
