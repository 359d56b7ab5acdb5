package observable

import (
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libobservable/diff"
	"github.com/sgostarter/libobservable/notify"
)

// TransformedView exposes a base Source through a pure element transform.
// Reads evaluate the transform lazily per lookup; observed base differences
// are remapped eagerly, once per changed element, so a full diff never has
// to be re-derived from snapshots. The transform must be referentially
// transparent: it is re-evaluated on every read.
type TransformedView[E, T any] struct {
	logger l.Wrapper

	base      Source[E]
	transform func(E) T

	token   notify.Token
	channel *notify.Channel[diff.Difference[T]]
}

func NewTransformedView[E, T any](base Source[E], transform func(E) T, logger l.Wrapper) *TransformedView[E, T] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "transformedView"))

	if base == nil || transform == nil {
		logger.Fatal("no base or transform")
	}

	impl := &TransformedView[E, T]{
		logger:    logger,
		base:      base,
		transform: transform,
		channel:   notify.NewChannel[diff.Difference[T]](),
	}

	impl.token = base.Subscribe(impl.onBaseDifference)

	return impl
}

func (impl *TransformedView[E, T]) Len() int {
	return impl.base.Len()
}

func (impl *TransformedView[E, T]) At(offset int) T {
	return impl.transform(impl.base.At(offset))
}

func (impl *TransformedView[E, T]) Snapshot() []T {
	base := impl.base.Snapshot()

	values := make([]T, 0, len(base))

	for _, element := range base {
		values = append(values, impl.transform(element))
	}

	return values
}

func (impl *TransformedView[E, T]) Subscribe(fn func(diff.Difference[T])) notify.Token {
	return impl.channel.Subscribe(fn)
}

func (impl *TransformedView[E, T]) Unsubscribe(token notify.Token) {
	impl.channel.Unsubscribe(token)
}

// Close detaches from the base and signals completion to all subscribers.
func (impl *TransformedView[E, T]) Close() {
	impl.base.Unsubscribe(impl.token)
	impl.channel.Complete()
}

// onBaseDifference is a pure 1:1 remap: the transform does not change
// cardinality or position, so offsets and pairing carry over verbatim.
func (impl *TransformedView[E, T]) onBaseDifference(d diff.Difference[E]) {
	impl.channel.Emit(diff.MapDifference(d, impl.transform))
}
