package observable

import (
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libobservable/diff"
	"github.com/sgostarter/libobservable/notify"
)

// FilteredView exposes only the base elements satisfying a pure predicate.
// The view is never random-access: every read walks the base from its start,
// so traversal and count are O(n) in the base's length however sparse the
// filtered result is. Observed differences are re-expressed by dropping
// failing elements and renumbering the survivors into the filtered index
// space, an O(n*m) operation per difference with m changes. Accepted cost,
// and the hot path to watch.
type FilteredView[E any] struct {
	logger l.Wrapper

	base      Source[E]
	predicate func(E) bool

	token   notify.Token
	channel *notify.Channel[diff.Difference[E]]
}

func NewFilteredView[E any](base Source[E], predicate func(E) bool, logger l.Wrapper) *FilteredView[E] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "filteredView"))

	if base == nil || predicate == nil {
		logger.Fatal("no base or predicate")
	}

	impl := &FilteredView[E]{
		logger:    logger,
		base:      base,
		predicate: predicate,
		channel:   notify.NewChannel[diff.Difference[E]](),
	}

	impl.token = base.Subscribe(impl.onBaseDifference)

	return impl
}

func (impl *FilteredView[E]) Len() (n int) {
	for _, element := range impl.base.Snapshot() {
		if impl.predicate(element) {
			n++
		}
	}

	return
}

func (impl *FilteredView[E]) At(offset int) E {
	if offset >= 0 {
		for _, element := range impl.base.Snapshot() {
			if !impl.predicate(element) {
				continue
			}

			if offset == 0 {
				return element
			}

			offset--
		}
	}

	impl.logger.Fatalf("offset out of range [0, %d)", impl.Len())

	var zero E

	return zero
}

func (impl *FilteredView[E]) Snapshot() []E {
	var values []E

	for _, element := range impl.base.Snapshot() {
		if impl.predicate(element) {
			values = append(values, element)
		}
	}

	return values
}

func (impl *FilteredView[E]) Subscribe(fn func(diff.Difference[E])) notify.Token {
	return impl.channel.Subscribe(fn)
}

func (impl *FilteredView[E]) Unsubscribe(token notify.Token) {
	impl.channel.Unsubscribe(token)
}

// Close detaches from the base and signals completion to all subscribers.
func (impl *FilteredView[E]) Close() {
	impl.base.Unsubscribe(impl.token)
	impl.channel.Complete()
}

// onBaseDifference re-expresses a base difference in the filtered index
// space. Insertion offsets live in the post-mutation base, which is what the
// base exposes by the time the difference arrives; removal offsets live in
// the pre-mutation base, reconstructed by unapplying the difference. Each
// surviving change's offset becomes the count of passing elements preceding
// it. A pairing survives only when both halves pass the predicate; otherwise
// the move degenerates into an independent insert or remove.
func (impl *FilteredView[E]) onBaseDifference(d diff.Difference[E]) {
	post := impl.base.Snapshot()
	pre := impl.unapply(post, d)

	removalOffsets := make(map[int]int)   // pre offset -> filtered offset, survivors only
	insertionOffsets := make(map[int]int) // post offset -> filtered offset, survivors only

	for _, c := range d.Removals() {
		if !impl.predicate(c.Element) {
			continue
		}

		removalOffsets[c.Offset] = impl.countPassing(pre, c.Offset)
	}

	for _, c := range d.Insertions() {
		if !impl.predicate(c.Element) {
			continue
		}

		insertionOffsets[c.Offset] = impl.countPassing(post, c.Offset)
	}

	changes := make([]diff.Change[E], 0, len(removalOffsets)+len(insertionOffsets))

	for _, c := range d.Removals() {
		offset, ok := removalOffsets[c.Offset]
		if !ok {
			continue
		}

		pairedOffset := diff.NoPairedOffset

		if c.Paired() {
			if partnerOffset, partnerOK := insertionOffsets[c.PairedOffset]; partnerOK {
				pairedOffset = partnerOffset
			}
		}

		changes = append(changes, diff.Change[E]{
			Kind:         diff.KindRemove,
			Offset:       offset,
			Element:      c.Element,
			PairedOffset: pairedOffset,
		})
	}

	for _, c := range d.Insertions() {
		offset, ok := insertionOffsets[c.Offset]
		if !ok {
			continue
		}

		pairedOffset := diff.NoPairedOffset

		if c.Paired() {
			if partnerOffset, partnerOK := removalOffsets[c.PairedOffset]; partnerOK {
				pairedOffset = partnerOffset
			}
		}

		changes = append(changes, diff.Change[E]{
			Kind:         diff.KindInsert,
			Offset:       offset,
			Element:      c.Element,
			PairedOffset: pairedOffset,
		})
	}

	if len(changes) == 0 {
		return
	}

	out, err := diff.NewDifference(changes)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Fatal("filtered difference rejected")

		return
	}

	impl.channel.Emit(out)
}

// unapply reconstructs the pre-mutation base sequence from the committed
// post-mutation snapshot: inserted elements come out at their post offsets,
// removed elements go back in at their pre offsets.
func (impl *FilteredView[E]) unapply(post []E, d diff.Difference[E]) []E {
	pre := make([]E, len(post))
	copy(pre, post)

	insertions := d.Insertions()

	for idx := len(insertions) - 1; idx >= 0; idx-- {
		offset := insertions[idx].Offset

		if offset >= len(pre) {
			impl.logger.Fatalf("insertion offset %d inconsistent with base length %d", offset, len(post))

			return nil
		}

		pre = append(pre[:offset], pre[offset+1:]...)
	}

	for _, c := range d.Removals() {
		if c.Offset > len(pre) {
			impl.logger.Fatalf("removal offset %d inconsistent with base length %d", c.Offset, len(post))

			return nil
		}

		pre = append(pre[:c.Offset], append([]E{c.Element}, pre[c.Offset:]...)...)
	}

	return pre
}

func (impl *FilteredView[E]) countPassing(values []E, upTo int) (n int) {
	for idx := 0; idx < upTo && idx < len(values); idx++ {
		if impl.predicate(values[idx]) {
			n++
		}
	}

	return
}
