package diff

import (
	"fmt"
	"sort"
)

// Difference is the canonical representation of a transition between two
// collection states. It is immutable once constructed and is the sole
// artifact passed across the publish boundary.
type Difference[E any] struct {
	removals   []Change[E]
	insertions []Change[E]
}

// NewDifference validates an arbitrary bag of changes and canonicalizes it:
// removals ordered before insertions, each group ascending by offset.
// It fails with ErrInvalidDifference on negative offsets, per-kind offset
// collisions or asymmetric pairing.
func NewDifference[E any](changes []Change[E]) (d Difference[E], err error) {
	removalAt := make(map[int]Change[E], len(changes))
	insertionAt := make(map[int]Change[E], len(changes))

	for _, c := range changes {
		if c.Offset < 0 {
			err = fmt.Errorf("%w: negative offset %d", ErrInvalidDifference, c.Offset)

			return
		}

		if c.Paired() && c.PairedOffset < 0 {
			err = fmt.Errorf("%w: negative paired offset %d", ErrInvalidDifference, c.PairedOffset)

			return
		}

		m := removalAt
		if c.Kind == KindInsert {
			m = insertionAt
		}

		if _, exists := m[c.Offset]; exists {
			err = fmt.Errorf("%w: duplicated offset %d", ErrInvalidDifference, c.Offset)

			return
		}

		m[c.Offset] = c
	}

	for _, c := range changes {
		if !c.Paired() {
			continue
		}

		partnerAt := removalAt
		if c.Kind == KindRemove {
			partnerAt = insertionAt
		}

		partner, exists := partnerAt[c.PairedOffset]
		if !exists || partner.PairedOffset != c.Offset {
			err = fmt.Errorf("%w: change at offset %d names partner %d which does not name it back",
				ErrInvalidDifference, c.Offset, c.PairedOffset)

			return
		}
	}

	sorted := make([]Change[E], len(changes))
	copy(sorted, changes)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Kind != sorted[j].Kind {
			return sorted[i].Kind == KindRemove
		}

		return sorted[i].Offset < sorted[j].Offset
	})

	boundary := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Kind == KindInsert
	})

	d = Difference[E]{
		removals:   sorted[:boundary],
		insertions: sorted[boundary:],
	}

	return
}

// Removals returns the removal changes ascending by pre-mutation offset.
// The returned slice is shared read-only state and must not be modified.
func (d Difference[E]) Removals() []Change[E] {
	return d.removals
}

// Insertions returns the insertion changes ascending by post-mutation offset.
// The returned slice is shared read-only state and must not be modified.
func (d Difference[E]) Insertions() []Change[E] {
	return d.insertions
}

func (d Difference[E]) Empty() bool {
	return len(d.removals) == 0 && len(d.insertions) == 0
}

// Changes returns all changes in canonical order: removals first, then
// insertions, each ascending by offset.
func (d Difference[E]) Changes() []Change[E] {
	all := make([]Change[E], 0, len(d.removals)+len(d.insertions))
	all = append(all, d.removals...)
	all = append(all, d.insertions...)

	return all
}

// MapDifference re-expresses a difference in another element type by
// applying fn to every change's element. Offsets and pairing carry over
// unchanged, so the result stays canonical without re-validation.
func MapDifference[E, T any](d Difference[E], fn func(E) T) Difference[T] {
	mapGroup := func(in []Change[E]) []Change[T] {
		if len(in) == 0 {
			return nil
		}

		out := make([]Change[T], 0, len(in))

		for _, c := range in {
			out = append(out, Change[T]{
				Kind:         c.Kind,
				Offset:       c.Offset,
				Element:      fn(c.Element),
				PairedOffset: c.PairedOffset,
			})
		}

		return out
	}

	return Difference[T]{
		removals:   mapGroup(d.removals),
		insertions: mapGroup(d.insertions),
	}
}
