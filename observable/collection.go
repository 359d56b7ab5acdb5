package observable

import (
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libobservable/diff"
	"github.com/sgostarter/libobservable/notify"
)

// Collection owns a mutable backing sequence and turns every structural
// mutation into a published Difference. The backing sequence may only be
// mutated through the Collection's own operations; an aliased mutation
// produces no Difference and silently desynchronizes downstream views.
type Collection[E any] struct {
	logger l.Wrapper

	values  []E
	channel *notify.Channel[diff.Difference[E]]
}

func NewCollection[E any](initial []E, logger l.Wrapper) *Collection[E] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "observableCollection"))

	values := make([]E, len(initial))
	copy(values, initial)

	return &Collection[E]{
		logger:  logger,
		values:  values,
		channel: notify.NewChannel[diff.Difference[E]](),
	}
}

func (impl *Collection[E]) Len() int {
	return len(impl.values)
}

func (impl *Collection[E]) At(offset int) E {
	if offset < 0 || offset >= len(impl.values) {
		impl.logger.Fatalf("offset %d out of range [0, %d)", offset, len(impl.values))
	}

	return impl.values[offset]
}

func (impl *Collection[E]) Snapshot() []E {
	values := make([]E, len(impl.values))
	copy(values, impl.values)

	return values
}

func (impl *Collection[E]) Subscribe(fn func(diff.Difference[E])) notify.Token {
	return impl.channel.Subscribe(fn)
}

func (impl *Collection[E]) Unsubscribe(token notify.Token) {
	impl.channel.Unsubscribe(token)
}

// Close signals completion to all subscribers. No further differences follow.
func (impl *Collection[E]) Close() {
	impl.channel.Complete()
}

// Set writes element at offset, published as a paired remove+insert at the
// same offset.
func (impl *Collection[E]) Set(offset int, element E) {
	if offset < 0 || offset >= len(impl.values) {
		impl.logger.Fatalf("offset %d out of range [0, %d)", offset, len(impl.values))
	}

	old := impl.values[offset]

	impl.values[offset] = element

	impl.publish([]diff.Change[E]{
		diff.RemovePaired(offset, old, offset),
		diff.InsertPaired(offset, element, offset),
	})
}

// ReplaceRange replaces the subrange [start, end) with the given elements.
// Old and new content are not aligned by position: the removals and
// insertions are unpaired. Offsets are relative to the collection's start.
func (impl *Collection[E]) ReplaceRange(start, end int, with []E) {
	if start < 0 || end < start || end > len(impl.values) {
		impl.logger.Fatalf("range [%d, %d) out of range [0, %d]", start, end, len(impl.values))
	}

	changes := make([]diff.Change[E], 0, end-start+len(with))

	for offset := start; offset < end; offset++ {
		changes = append(changes, diff.Remove(offset, impl.values[offset]))
	}

	for idx, element := range with {
		changes = append(changes, diff.Insert(start+idx, element))
	}

	values := make([]E, 0, len(impl.values)-(end-start)+len(with))
	values = append(values, impl.values[:start]...)
	values = append(values, with...)
	values = append(values, impl.values[end:]...)

	impl.values = values

	impl.publish(changes)
}

// Swap exchanges the elements at i and j, published as two paired move
// pairs. Swapping a position with itself emits nothing.
func (impl *Collection[E]) Swap(i, j int) {
	if i < 0 || i >= len(impl.values) || j < 0 || j >= len(impl.values) {
		impl.logger.Fatalf("swap %d, %d out of range [0, %d)", i, j, len(impl.values))
	}

	if i == j {
		return
	}

	ei, ej := impl.values[i], impl.values[j]

	impl.values[i], impl.values[j] = ej, ei

	impl.publish([]diff.Change[E]{
		diff.RemovePaired(i, ei, j),
		diff.InsertPaired(j, ei, i),
		diff.RemovePaired(j, ej, i),
		diff.InsertPaired(i, ej, j),
	})
}

// Replace swaps the entire backing sequence. With no current subscribers the
// difference is never computed; otherwise every old element is removed and
// every new element inserted, unpaired, with no identity correlation assumed.
func (impl *Collection[E]) Replace(values []E) {
	old := impl.values

	impl.values = make([]E, len(values))
	copy(impl.values, values)

	if !impl.channel.HasSubscribers() {
		return
	}

	changes := make([]diff.Change[E], 0, len(old)+len(values))

	for offset, element := range old {
		changes = append(changes, diff.Remove(offset, element))
	}

	for offset, element := range impl.values {
		changes = append(changes, diff.Insert(offset, element))
	}

	impl.publish(changes)
}

// publish runs after the mutation has been committed to the backing
// sequence. The generators above guarantee offset uniqueness and pairing
// symmetry, so a construction failure here is a defect, not a runtime
// condition.
func (impl *Collection[E]) publish(changes []diff.Change[E]) {
	if len(changes) == 0 {
		return
	}

	d, err := diff.NewDifference(changes)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Fatal("generated difference rejected")

		return
	}

	impl.channel.Emit(d)
}
