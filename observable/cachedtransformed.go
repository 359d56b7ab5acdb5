package observable

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libobservable/diff"
	"github.com/sgostarter/libobservable/notify"
)

// CachedTransformedView is a TransformedView that memoizes transform results
// per offset. The transform is pure, so a memo entry only goes stale through
// structural change: every observed base difference flushes the whole cache.
// Worth it when the transform is expensive relative to the mutation rate.
type CachedTransformedView[E, T any] struct {
	logger l.Wrapper

	base      Source[E]
	transform func(E) T

	token    notify.Token
	channel  *notify.Channel[diff.Difference[T]]
	cachedTs *cache.Cache
}

func NewCachedTransformedView[E, T any](base Source[E], transform func(E) T,
	cacheDuration time.Duration, logger l.Wrapper) *CachedTransformedView[E, T] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "cachedTransformedView"))

	if base == nil || transform == nil {
		logger.Fatal("no base or transform")
	}

	if cacheDuration <= 0 {
		cacheDuration = time.Minute
	}

	impl := &CachedTransformedView[E, T]{
		logger:    logger,
		base:      base,
		transform: transform,
		channel:   notify.NewChannel[diff.Difference[T]](),
		cachedTs:  cache.New(cacheDuration, cacheDuration*2),
	}

	impl.token = base.Subscribe(impl.onBaseDifference)

	return impl
}

func (impl *CachedTransformedView[E, T]) Len() int {
	return impl.base.Len()
}

func (impl *CachedTransformedView[E, T]) At(offset int) T {
	key := strconv.Itoa(offset)

	if i, ok := impl.cachedTs.Get(key); ok {
		// nolint:forcetypeassert
		return i.(T)
	}

	v := impl.transform(impl.base.At(offset))

	impl.cachedTs.Set(key, v, cache.DefaultExpiration)

	return v
}

func (impl *CachedTransformedView[E, T]) Snapshot() []T {
	values := make([]T, 0, impl.Len())

	for offset := 0; offset < impl.Len(); offset++ {
		values = append(values, impl.At(offset))
	}

	return values
}

func (impl *CachedTransformedView[E, T]) Subscribe(fn func(diff.Difference[T])) notify.Token {
	return impl.channel.Subscribe(fn)
}

func (impl *CachedTransformedView[E, T]) Unsubscribe(token notify.Token) {
	impl.channel.Unsubscribe(token)
}

// Close detaches from the base and signals completion to all subscribers.
func (impl *CachedTransformedView[E, T]) Close() {
	impl.base.Unsubscribe(impl.token)
	impl.channel.Complete()
}

func (impl *CachedTransformedView[E, T]) onBaseDifference(d diff.Difference[E]) {
	impl.cachedTs.Flush()

	impl.channel.Emit(diff.MapDifference(d, impl.transform))
}
