// core/peptide/dedupe.go
package peptide

import "container/list"

const defaultDedupeWindow = 200_000

// Deduper suppresses peptides already emitted within a bounded window.
// Bounding the window caps memory on very large peptide streams while
// still collapsing the duplicates tryptic digestion produces.
type Deduper struct {
	cap int
	ll  *list.List
	m   map[string]*list.Element
}

// NewDeduper returns a Deduper remembering the last window peptides.
// window <= 0 selects the default.
func NewDeduper(window int) *Deduper {
	if window <= 0 {
		window = defaultDedupeWindow
	}
	return &Deduper{cap: window, ll: list.New(), m: make(map[string]*list.Element)}
}

// Seen records p and reports whether it was already in the window.
func (d *Deduper) Seen(p string) bool {
	if e, ok := d.m[p]; ok {
		d.ll.MoveToFront(e)
		return true
	}
	e := d.ll.PushFront(p)
	d.m[p] = e
	if d.ll.Len() > d.cap {
		tail := d.ll.Back()
		d.ll.Remove(tail)
		delete(d.m, tail.Value.(string))
	}
	return false
}
