package notify

import (
	"github.com/godruoyi/go-snowflake"
)

// Token identifies one subscription on one Channel. Tokens are opaque and
// unique across channels.
type Token uint64

type subscriber[T any] struct {
	token Token
	fn    func(T)
}

// Channel delivers every emitted value to every current subscriber, at most
// once per value per subscriber, in subscription order. State is instance
// scoped. A Channel is not safe for concurrent use; the owning component and
// all of its subscribers share one logical thread of control.
type Channel[T any] struct {
	subscribers []subscriber[T]
	completed   bool
}

func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Subscribe registers fn for every value emitted until the returned token is
// passed to Unsubscribe. Subscribing to a completed channel yields a token
// that will never fire.
func (ch *Channel[T]) Subscribe(fn func(T)) Token {
	token := Token(snowflake.ID())

	if fn == nil || ch.completed {
		return token
	}

	ch.subscribers = append(ch.subscribers, subscriber[T]{
		token: token,
		fn:    fn,
	})

	return token
}

func (ch *Channel[T]) Unsubscribe(token Token) {
	for idx, s := range ch.subscribers {
		if s.token != token {
			continue
		}

		ch.subscribers = append(ch.subscribers[:idx], ch.subscribers[idx+1:]...)

		return
	}
}

// Emit delivers v to all current subscribers synchronously. A subscriber
// that unsubscribes itself or another during the fan-out stops receiving
// values from the next Emit on; deliveries already scheduled for this value
// still skip only the detached subscribers.
func (ch *Channel[T]) Emit(v T) {
	if ch.completed {
		return
	}

	inFlight := make([]subscriber[T], len(ch.subscribers))
	copy(inFlight, ch.subscribers)

	for _, s := range inFlight {
		if !ch.subscribed(s.token) {
			continue
		}

		s.fn(v)
	}
}

// Complete terminally closes the channel: all subscribers are dropped and no
// further values are delivered.
func (ch *Channel[T]) Complete() {
	ch.completed = true
	ch.subscribers = nil
}

func (ch *Channel[T]) Completed() bool {
	return ch.completed
}

// HasSubscribers lets emitters skip expensive event construction when nobody
// is listening.
func (ch *Channel[T]) HasSubscribers() bool {
	return len(ch.subscribers) > 0
}

func (ch *Channel[T]) subscribed(token Token) bool {
	for _, s := range ch.subscribers {
		if s.token == token {
			return true
		}
	}

	return false
}
