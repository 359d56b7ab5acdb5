package observable

import (
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libobservable/diff"
	"github.com/sgostarter/libobservable/notify"
)

// BoundedView is a read-only window over an offset range of a base Source.
// It holds no storage of its own: reads delegate to the base, and observed
// base differences are restricted and re-offset into the window before being
// re-published.
type BoundedView[E any] struct {
	logger l.Wrapper

	base   Source[E]
	start  int
	length int

	token   notify.Token
	channel *notify.Channel[diff.Difference[E]]
}

// NewBoundedView resolves the requested window against the base's current
// length, clamping when it exceeds the available elements. The resolved
// bounds stay fixed for the view's lifetime; reads clamp against the base's
// current length.
func NewBoundedView[E any](base Source[E], start, maxLength int, logger l.Wrapper) *BoundedView[E] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "boundedView"))

	if base == nil {
		logger.Fatal("no base")
	}

	if start < 0 || maxLength < 0 {
		logger.Fatalf("invalid window: start %d, maxLength %d", start, maxLength)
	}

	baseLen := base.Len()

	if start > baseLen {
		start = baseLen
	}

	length := maxLength
	if start+length > baseLen {
		length = baseLen - start
	}

	impl := &BoundedView[E]{
		logger:  logger,
		base:    base,
		start:   start,
		length:  length,
		channel: notify.NewChannel[diff.Difference[E]](),
	}

	impl.token = base.Subscribe(impl.onBaseDifference)

	return impl
}

// Slice re-derives a sub-window as another BoundedView over the same base,
// never a view of a view, so offset arithmetic stays single-hop.
func (impl *BoundedView[E]) Slice(start, maxLength int) *BoundedView[E] {
	if start < 0 || maxLength < 0 {
		impl.logger.Fatalf("invalid window: start %d, maxLength %d", start, maxLength)
	}

	if start > impl.length {
		start = impl.length
	}

	if maxLength > impl.length-start {
		maxLength = impl.length - start
	}

	return NewBoundedView(impl.base, impl.start+start, maxLength, impl.logger)
}

func (impl *BoundedView[E]) Len() int {
	baseLen := impl.base.Len()

	if impl.start >= baseLen {
		return 0
	}

	if impl.start+impl.length > baseLen {
		return baseLen - impl.start
	}

	return impl.length
}

func (impl *BoundedView[E]) At(offset int) E {
	if offset < 0 || offset >= impl.Len() {
		impl.logger.Fatalf("offset %d out of range [0, %d)", offset, impl.Len())
	}

	return impl.base.At(impl.start + offset)
}

func (impl *BoundedView[E]) Snapshot() []E {
	values := make([]E, 0, impl.Len())

	for offset := 0; offset < impl.Len(); offset++ {
		values = append(values, impl.base.At(impl.start+offset))
	}

	return values
}

func (impl *BoundedView[E]) Subscribe(fn func(diff.Difference[E])) notify.Token {
	return impl.channel.Subscribe(fn)
}

func (impl *BoundedView[E]) Unsubscribe(token notify.Token) {
	impl.channel.Unsubscribe(token)
}

// Close detaches from the base and signals completion to all subscribers.
func (impl *BoundedView[E]) Close() {
	impl.base.Unsubscribe(impl.token)
	impl.channel.Complete()
}

// onBaseDifference drops changes whose offset falls outside the window,
// rebases the survivors to the window start and drops pairings whose partner
// fell outside.
func (impl *BoundedView[E]) onBaseDifference(d diff.Difference[E]) {
	inWindow := func(offset int) bool {
		return offset >= impl.start && offset < impl.start+impl.length
	}

	var changes []diff.Change[E]

	for _, c := range d.Changes() {
		if !inWindow(c.Offset) {
			continue
		}

		c.Offset -= impl.start

		if c.Paired() {
			if inWindow(c.PairedOffset) {
				c.PairedOffset -= impl.start
			} else {
				c.PairedOffset = diff.NoPairedOffset
			}
		}

		changes = append(changes, c)
	}

	if len(changes) == 0 {
		return
	}

	out, err := diff.NewDifference(changes)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Fatal("restricted difference rejected")

		return
	}

	impl.channel.Emit(out)
}
