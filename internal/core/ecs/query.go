package ecs

import (
	"fmt"
	"iter"
)

// Join yields the entities present in every given column. It walks the
// smallest column in insertion order (first one wins on ties) and checks the
// rest, so the row order only depends on the order of store mutations.
// An empty argument list yields nothing.
func Join(cols ...Column) iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		if len(cols) == 0 {
			return
		}
		lead := smallest(cols)
		ids := make([]EntityID, len(cols[lead].ids()))
		copy(ids, cols[lead].ids())

	rows:
		for _, id := range ids {
			for i, c := range cols {
				if i != lead && !c.Has(id) {
					continue rows
				}
			}
			// re-check the lead: an earlier row may have removed this one
			if !cols[lead].Has(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Each2 iterates over entities that have both component A and B.
// The pointers handed to fn belong to distinct stores and never alias.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	mustDistinct(sa, sb)
	for id := range Join(sa, sb) {
		fn(id, sa.data[id], sb.data[id])
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	mustDistinct(sa, sb, sc)
	for id := range Join(sa, sb, sc) {
		fn(id, sa.data[id], sb.data[id], sc.data[id])
	}
}

// Each4 iterates over entities that have components A, B, C, and D.
func Each4[A, B, C, D any](sa *Store[A], sb *Store[B], sc *Store[C], sd *Store[D], fn func(EntityID, *A, *B, *C, *D)) {
	mustDistinct(sa, sb, sc, sd)
	for id := range Join(sa, sb, sc, sd) {
		fn(id, sa.data[id], sb.data[id], sc.data[id], sd.data[id])
	}
}

// First returns the first entity of the join, or NilEntity.
func First(cols ...Column) EntityID {
	for id := range Join(cols...) {
		return id
	}
	return NilEntity
}

func smallest(cols []Column) int {
	lead := 0
	for i := 1; i < len(cols); i++ {
		if cols[i].Len() < cols[lead].Len() {
			lead = i
		}
	}
	return lead
}

func mustDistinct(cols ...Column) {
	for i := range cols {
		for j := i + 1; j < len(cols); j++ {
			if cols[i] == cols[j] {
				panic(fmt.Errorf("join argument %d and %d: %w", i, j, ErrAliasedStore))
			}
		}
	}
}
