package observable

import (
	"github.com/sgostarter/libobservable/diff"
	"github.com/sgostarter/libobservable/notify"
)

// Source is what every link of a difference pipeline exposes: a read-only
// indexable sequence plus a stream of Differences terminated by completion.
// A Collection is a Source, and so is every view derived from one, so views
// chain to arbitrary depth.
//
// All Sources share the single-threaded cooperative model: one logical
// thread of control constructs, mutates and observes a pipeline.
type Source[E any] interface {
	Len() int
	At(offset int) E
	Snapshot() []E

	Subscribe(fn func(diff.Difference[E])) notify.Token
	Unsubscribe(token notify.Token)
}
